package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basetic/osint-terminal/internal/domain"
	"github.com/basetic/osint-terminal/internal/seed"
)

func findTool(tools []domain.Tool, name string) *domain.Tool {
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i]
		}
	}
	return nil
}

func TestImportSemicolonDelimitedLines(t *testing.T) {
	env := setupTestServices(t)

	input := "Governo;Portal X;https://portalx.gov.br\n" +
		"Governo;Portal Y;portaly.gov.br;Acervo estadual\n"
	summary, err := env.catalog.ImportTools(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ToolsAdded)
	assert.Equal(t, 0, summary.CategoriesAdded) // Governo already exists
	assert.Equal(t, 0, summary.LinesSkipped)
	assert.NotEmpty(t, summary.BatchID)

	tools := env.state.Tools()
	x := findTool(tools, "Portal X")
	require.NotNil(t, x)
	assert.Equal(t, "cat-governo", x.CategoryID)
	assert.Equal(t, "Importado", x.Description)
	assert.Equal(t, "https://portalx.gov.br", x.URL)

	y := findTool(tools, "Portal Y")
	require.NotNil(t, y)
	assert.Equal(t, "Acervo estadual", y.Description)
	assert.Equal(t, "https://portaly.gov.br", y.URL)
}

func TestImportCommaDelimitedWithQuotes(t *testing.T) {
	env := setupTestServices(t)

	input := `"Criptomoedas","Chainalysis","chainalysis.com"` + "\n"
	summary, err := env.catalog.ImportTools(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ToolsAdded)
	assert.Equal(t, 1, summary.CategoriesAdded)

	tool := findTool(env.state.Tools(), "Chainalysis")
	require.NotNil(t, tool)
	assert.Equal(t, "https://chainalysis.com", tool.URL)
	assert.Equal(t, "Criptomoedas", env.catalog.CategoryLabel(tool.CategoryID))
}

func TestImportSkipsHeaderBlankAndShortLines(t *testing.T) {
	env := setupTestServices(t)

	input := "Categoria;Nome;URL\n" +
		"\n" +
		"   \n" +
		"Governo;Incompleta\n" +
		"Governo;Sem URL;\n" +
		"Governo;Válida;https://valida.gov.br\n"
	summary, err := env.catalog.ImportTools(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ToolsAdded)
	assert.Equal(t, 2, summary.LinesSkipped)
	require.NotNil(t, findTool(env.state.Tools(), "Válida"))
	assert.Nil(t, findTool(env.state.Tools(), "Incompleta"))
	assert.Nil(t, findTool(env.state.Tools(), "Sem URL"))
}

func TestImportFuzzyHeaderRemapsColumns(t *testing.T) {
	env := setupTestServices(t)

	input := "url;ferramenta;cat;desc\n" +
		"https://osintframework.com;OSINT Framework;Metodologia;Coleção de links\n"
	summary, err := env.catalog.ImportTools(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ToolsAdded)
	tool := findTool(env.state.Tools(), "OSINT Framework")
	require.NotNil(t, tool)
	assert.Equal(t, "https://osintframework.com", tool.URL)
	assert.Equal(t, "Coleção de links", tool.Description)
	assert.Equal(t, "Metodologia", env.catalog.CategoryLabel(tool.CategoryID))
}

func TestImportReusesCategoriesWithinBatch(t *testing.T) {
	env := setupTestServices(t)

	input := "Nova;Ferramenta A;https://a.example.com\n" +
		"NOVA;Ferramenta B;https://b.example.com\n"
	summary, err := env.catalog.ImportTools(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ToolsAdded)
	assert.Equal(t, 1, summary.CategoriesAdded)

	a := findTool(env.state.Tools(), "Ferramenta A")
	b := findTool(env.state.Tools(), "Ferramenta B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.CategoryID, b.CategoryID)
}

func TestImportEmptyInputIsANoOp(t *testing.T) {
	env := setupTestServices(t)

	summary, err := env.catalog.ImportTools(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.ToolsAdded)
	assert.Len(t, env.state.Tools(), len(seed.DefaultTools))
}
