package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/domain"
	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/seed"
)

func TestAddToolNormalizesURL(t *testing.T) {
	env := setupTestServices(t)

	tool, err := env.catalog.AddTool(AddToolRequest{
		Name:       "Censys",
		URL:        "censys.io",
		CategoryID: "cat-dominios",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://censys.io", tool.URL)

	tool, err = env.catalog.AddTool(AddToolRequest{
		Name:       "Plain HTTP",
		URL:        "http://legacy.example.com",
		CategoryID: "cat-dominios",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://legacy.example.com", tool.URL)
}

func TestAddToolAllowsDanglingCategory(t *testing.T) {
	env := setupTestServices(t)

	tool, err := env.catalog.AddTool(AddToolRequest{
		Name:       "Orphan",
		URL:        "https://example.com",
		CategoryID: "cat-nonexistent",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackCategoryLabel, env.catalog.CategoryLabel(tool.CategoryID))
}

func TestUpdateToolPartialMerge(t *testing.T) {
	env := setupTestServices(t)

	created, err := env.catalog.AddTool(AddToolRequest{
		Name:        "Censys",
		Description: "Busca de hosts",
		URL:         "https://censys.io",
		CategoryID:  "cat-dominios",
	})
	require.NoError(t, err)

	newName := "Censys Search"
	updated, err := env.catalog.UpdateTool(created.ID, UpdateToolRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Censys Search", updated.Name)
	assert.Equal(t, "Busca de hosts", updated.Description)
	assert.Equal(t, "https://censys.io", updated.URL)
}

func TestRemoveTool(t *testing.T) {
	env := setupTestServices(t)

	created, err := env.catalog.AddTool(AddToolRequest{
		Name:       "Temp",
		URL:        "https://example.com",
		CategoryID: "cat-governo",
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.RemoveTool(created.ID))
	err = env.catalog.RemoveTool(created.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestAddCategoryRejectsDuplicateNameCaseInsensitively(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.catalog.AddCategory("GOVERNO")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAlreadyExists))
}

func TestEnsureCategoryFindsOrCreates(t *testing.T) {
	env := setupTestServices(t)

	existing, err := env.catalog.EnsureCategory("governo")
	require.NoError(t, err)
	assert.Equal(t, "cat-governo", existing.ID)

	created, err := env.catalog.EnsureCategory("Criptomoedas")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	again, err := env.catalog.EnsureCategory("criptomoedas")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestRemoveCategoryCascadesTools(t *testing.T) {
	env := setupTestServices(t)

	countsBefore := env.catalog.Counts()
	inCategory := countsBefore["cat-dominios"]
	require.Positive(t, inCategory)
	totalBefore := countsBefore[catalog.AllCategories]

	require.NoError(t, env.catalog.RemoveCategory("cat-dominios"))

	counts := env.catalog.Counts()
	assert.Equal(t, totalBefore-inCategory, counts[catalog.AllCategories])
	_, present := counts["cat-dominios"]
	assert.False(t, present)

	for _, tool := range env.state.Tools() {
		assert.NotEqual(t, "cat-dominios", tool.CategoryID)
	}
}

func TestRemoveUnknownCategory(t *testing.T) {
	env := setupTestServices(t)

	err := env.catalog.RemoveCategory("cat-missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestSearchCombinesTermAndCategory(t *testing.T) {
	env := setupTestServices(t)

	all := env.catalog.Search("", "")
	assert.Len(t, all, len(seed.DefaultTools))

	found := env.catalog.Search("shodan", "")
	require.Len(t, found, 1)
	assert.Equal(t, "tool-shodan", found[0].ID)

	found = env.catalog.Search("shodan", "cat-governo")
	assert.Empty(t, found)
}

func TestSearchReflectsMutations(t *testing.T) {
	env := setupTestServices(t)

	assert.Empty(t, env.catalog.Search("censys", ""))

	_, err := env.catalog.AddTool(AddToolRequest{
		Name:       "Censys",
		URL:        "https://censys.io",
		CategoryID: "cat-dominios",
	})
	require.NoError(t, err)

	assert.Len(t, env.catalog.Search("censys", ""), 1)
}

func TestResetCatalogRestoresSeedsKeepingAccounts(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.catalog.AddTool(AddToolRequest{
		Name:       "Custom",
		URL:        "https://example.com",
		CategoryID: "cat-governo",
	})
	require.NoError(t, err)
	_, err = env.accounts.Add(AddAccountRequest{Username: "analista", Password: "x"})
	require.NoError(t, err)

	env.catalog.ResetCatalog()

	assert.Len(t, env.state.Tools(), len(seed.DefaultTools))
	assert.Len(t, env.state.Categories(), len(seed.DefaultCategories))
	assert.Len(t, env.accounts.List(), 2)
}

func TestToggleTheme(t *testing.T) {
	env := setupTestServices(t)

	assert.Equal(t, domain.ThemeLight, env.catalog.ToggleTheme())
	assert.Equal(t, domain.ThemeDark, env.catalog.ToggleTheme())

	require.NoError(t, env.catalog.SetTheme(domain.ThemeLight))
	assert.Equal(t, domain.ThemeLight, env.state.Theme())

	err := env.catalog.SetTheme(domain.Theme("neon"))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}
