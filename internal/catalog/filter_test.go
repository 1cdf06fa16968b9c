package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/basetic/osint-terminal/internal/domain"
)

var testTools = []domain.Tool{
	{ID: "tool-1", Name: "Portal da Transparência", Description: "Gastos públicos", CategoryID: "cat-governo"},
	{ID: "tool-2", Name: "Shodan", Description: "Dispositivos expostos", CategoryID: "cat-dominios"},
	{ID: "tool-3", Name: "TinEye", Description: "Busca reversa de imagens", CategoryID: "cat-imagens"},
	{ID: "tool-4", Name: "VirusTotal", Description: "Análise de URLs e domínios", CategoryID: "cat-dominios"},
}

var testCategories = []domain.Category{
	{ID: "cat-governo", Name: "Governo"},
	{ID: "cat-dominios", Name: "Domínios & IP"},
	{ID: "cat-imagens", Name: "Imagens & Metadados"},
	{ID: "cat-vazio", Name: "Vazia"},
}

func ids(tools []domain.Tool) []string {
	out := make([]string, len(tools))
	for i, tool := range tools {
		out[i] = tool.ID
	}
	return out
}

func TestFilterEmptyQueryReturnsEverything(t *testing.T) {
	e := NewEngine()
	got := e.Filter(1, testTools, Query{})
	assert.Equal(t, []string{"tool-1", "tool-2", "tool-3", "tool-4"}, ids(got))
}

func TestFilterMatchesNameCaseInsensitively(t *testing.T) {
	e := NewEngine()
	got := e.Filter(1, testTools, Query{Search: "SHODAN"})
	assert.Equal(t, []string{"tool-2"}, ids(got))
}

func TestFilterMatchesDescription(t *testing.T) {
	e := NewEngine()
	got := e.Filter(1, testTools, Query{Search: "reversa"})
	assert.Equal(t, []string{"tool-3"}, ids(got))
}

func TestFilterMatchesAccentedText(t *testing.T) {
	e := NewEngine()
	got := e.Filter(1, testTools, Query{Search: "transparência"})
	assert.Equal(t, []string{"tool-1"}, ids(got))
}

func TestFilterCombinesSearchAndCategory(t *testing.T) {
	e := NewEngine()

	got := e.Filter(1, testTools, Query{Category: "cat-dominios"})
	assert.Equal(t, []string{"tool-2", "tool-4"}, ids(got))

	got = e.Filter(1, testTools, Query{Search: "domínios", Category: "cat-dominios"})
	assert.Equal(t, []string{"tool-4"}, ids(got))
}

func TestFilterTrimsSearchTerm(t *testing.T) {
	e := NewEngine()
	got := e.Filter(1, testTools, Query{Search: "  shodan  "})
	assert.Equal(t, []string{"tool-2"}, ids(got))
}

func TestFilterNoMatches(t *testing.T) {
	e := NewEngine()
	got := e.Filter(1, testTools, Query{Search: "maltego"})
	assert.Empty(t, got)
}

func TestFilterMemoizesOnRevisionAndQuery(t *testing.T) {
	e := NewEngine()

	first := e.Filter(7, testTools, Query{Search: "shodan"})
	second := e.Filter(7, testTools, Query{Search: "shodan"})
	// Same backing array means the memoized result was reused.
	assert.Same(t, &first[0], &second[0])

	third := e.Filter(8, testTools, Query{Search: "shodan"})
	assert.Equal(t, ids(first), ids(third))
}

func TestCountsIncludeAllAndZeroCategories(t *testing.T) {
	counts := Counts(testTools, testCategories)

	assert.Equal(t, 4, counts[AllCategories])
	assert.Equal(t, 1, counts["cat-governo"])
	assert.Equal(t, 2, counts["cat-dominios"])
	assert.Equal(t, 1, counts["cat-imagens"])
	assert.Equal(t, 0, counts["cat-vazio"])
}

func TestCountsDanglingCategoryStillCountsTowardTotal(t *testing.T) {
	tools := append([]domain.Tool(nil), testTools...)
	tools = append(tools, domain.Tool{ID: "tool-5", Name: "Orphan", CategoryID: "cat-gone"})

	counts := Counts(tools, testCategories)
	assert.Equal(t, 5, counts[AllCategories])
	_, present := counts["cat-gone"]
	assert.False(t, present)
}

func TestFoldHandlesAccents(t *testing.T) {
	assert.Equal(t, Fold("GEOLOCALIZAÇÃO"), Fold("geolocalização"))
}

func TestLabelForDanglingReference(t *testing.T) {
	assert.Equal(t, "Governo", domain.LabelFor(testCategories, "cat-governo"))
	assert.Equal(t, domain.FallbackCategoryLabel, domain.LabelFor(testCategories, "cat-gone"))
}
