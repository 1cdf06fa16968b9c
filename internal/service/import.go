package service

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/domain"
	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/id"
)

// ImportSummary aggregates the outcome of one bulk import.
type ImportSummary struct {
	BatchID         string `json:"batchId"`
	ToolsAdded      int    `json:"toolsAdded"`
	CategoriesAdded int    `json:"categoriesAdded"`
	LinesSkipped    int    `json:"linesSkipped"`
}

// columnMap assigns record columns to tool fields. Defaults to the shipped
// layout (category, name, url, description); a recognized header row remaps
// it.
type columnMap struct {
	category    int
	name        int
	url         int
	description int
}

var defaultColumns = columnMap{category: 0, name: 1, url: 2, description: 3}

// ImportTools ingests a delimited text listing of tools, one per line:
// category name, tool name, URL and an optional description. Both `;` and
// `,` delimiters are accepted, decided per line. Categories are resolved by
// case-insensitive name and created on demand. The whole batch commits in a
// single catalog update.
func (s *CatalogService) ImportTools(r io.Reader) (*ImportSummary, error) {
	summary := &ImportSummary{BatchID: uuid.NewString()}

	tools := s.state.Tools()
	categories := s.state.Categories()
	categoryByName := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryByName[catalog.Fold(category.Name)] = category.ID
	}

	columns := defaultColumns
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := splitRecord(line)

		if strings.HasPrefix(catalog.Fold(line), "categoria") {
			if mapped, ok := detectHeader(fields); ok {
				columns = mapped
			}
			continue
		}
		if mapped, ok := detectHeader(fields); ok {
			columns = mapped
			continue
		}

		record, ok := extractRecord(fields, columns)
		if !ok {
			summary.LinesSkipped++
			continue
		}

		categoryID, found := categoryByName[catalog.Fold(record.category)]
		if !found {
			categoryID = id.MustGenerate("cat")
			categories = append(categories, domain.Category{ID: categoryID, Name: record.category})
			categoryByName[catalog.Fold(record.category)] = categoryID
			summary.CategoriesAdded++
		}

		tools = append(tools, domain.Tool{
			ID:          id.MustGenerate("tool"),
			Name:        record.name,
			Description: record.description,
			URL:         NormalizeURL(record.url),
			CategoryID:  categoryID,
		})
		summary.ToolsAdded++
	}
	if err := scanner.Err(); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "falha ao ler arquivo de importação")
	}

	s.state.UpdateCatalog(tools, categories)
	s.bus.Notify(events.LevelInfo, "Importação concluída!")
	s.logger.Info("import finished",
		slog.String("batch_id", summary.BatchID),
		slog.Int("tools_added", summary.ToolsAdded),
		slog.Int("categories_added", summary.CategoriesAdded),
		slog.Int("lines_skipped", summary.LinesSkipped))
	return summary, nil
}

type importRecord struct {
	category    string
	name        string
	url         string
	description string
}

// extractRecord pulls the tool fields out of one data line. Records with
// fewer than three fields, or with an empty category, name or URL, are
// rejected.
func extractRecord(fields []string, columns columnMap) (importRecord, bool) {
	if len(fields) < 3 {
		return importRecord{}, false
	}

	record := importRecord{
		category:    fieldAt(fields, columns.category),
		name:        fieldAt(fields, columns.name),
		url:         fieldAt(fields, columns.url),
		description: fieldAt(fields, columns.description),
	}
	if record.category == "" || record.name == "" || record.url == "" {
		return importRecord{}, false
	}
	if record.description == "" {
		record.description = "Importado"
	}
	return record, true
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// splitRecord splits one line on `;` when present, `,` otherwise, stripping
// quotes and surrounding whitespace from every field.
func splitRecord(line string) []string {
	delimiter := ","
	if strings.Contains(line, ";") {
		delimiter = ";"
	}

	parts := strings.Split(line, delimiter)
	fields := make([]string, len(parts))
	for i, part := range parts {
		fields[i] = strings.TrimSpace(strings.ReplaceAll(part, `"`, ""))
	}
	return fields
}

// detectHeader recognizes a header row by its column labels and returns the
// remapped column layout. At least three of the four labels must match for
// the line to count as a header.
func detectHeader(fields []string) (columnMap, bool) {
	columns := columnMap{category: -1, name: -1, url: -1, description: -1}
	matched := 0
	for i, field := range fields {
		folded := catalog.Fold(field)
		switch {
		case columns.category < 0 && strings.Contains(folded, "cat"):
			columns.category = i
			matched++
		case columns.name < 0 && (strings.Contains(folded, "name") ||
			strings.Contains(folded, "nome") || strings.Contains(folded, "ferramenta")):
			columns.name = i
			matched++
		case columns.url < 0 && (strings.Contains(folded, "url") || strings.Contains(folded, "link")):
			columns.url = i
			matched++
		case columns.description < 0 && strings.Contains(folded, "desc"):
			columns.description = i
			matched++
		}
	}
	if matched < 3 {
		return columnMap{}, false
	}
	return columns, true
}
