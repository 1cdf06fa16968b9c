package domain

// FallbackCategoryLabel is displayed for tools whose category no longer
// exists. Dangling references are never an error; they surface as this label.
const FallbackCategoryLabel = "Outros"

// Category is a named grouping of tools.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LabelFor returns the name of the category with the given id, or the
// fallback label when the reference is dangling.
func LabelFor(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return FallbackCategoryLabel
}
