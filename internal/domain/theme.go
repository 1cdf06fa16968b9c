package domain

// Theme is the persisted UI theme preference.
type Theme string

const (
	// ThemeDark is the default theme.
	ThemeDark Theme = "dark"
	// ThemeLight is the alternative theme.
	ThemeLight Theme = "light"
)

// IsValid reports whether t is one of the known themes.
func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}
