package service

import (
	"log/slog"
	"strings"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/domain"
	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/id"
	"github.com/basetic/osint-terminal/internal/seed"
	"github.com/basetic/osint-terminal/internal/state"
	"github.com/basetic/osint-terminal/internal/validation"
)

// CatalogService manages the tool and category collections and answers
// filtered directory queries.
type CatalogService struct {
	state     *state.State
	engine    *catalog.Engine
	bus       *events.Bus
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st *state.State, engine *catalog.Engine, bus *events.Bus, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{state: st, engine: engine, bus: bus, validator: validator, logger: logger}
}

// AddToolRequest contains the data for a new tool.
type AddToolRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required"`
	CategoryID  string `json:"categoryId" validate:"required"`
}

// AddTool creates a tool. The category reference is not resolved; a dangling
// id surfaces in listings under the fallback label rather than failing.
func (s *CatalogService) AddTool(req AddToolRequest) (*domain.Tool, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tool := domain.Tool{
		ID:          id.MustGenerate("tool"),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		URL:         NormalizeURL(req.URL),
		CategoryID:  req.CategoryID,
	}
	s.state.UpdateTools(append(s.state.Tools(), tool))
	s.logger.Info("tool added", slog.String("tool_id", tool.ID), slog.String("name", tool.Name))
	return &tool, nil
}

// UpdateToolRequest contains the partial update for a tool. Nil fields are
// left unchanged.
type UpdateToolRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

// UpdateTool applies a partial update to a tool.
func (s *CatalogService) UpdateTool(toolID string, req UpdateToolRequest) (*domain.Tool, error) {
	tools := s.state.Tools()
	idx := -1
	for i, tool := range tools {
		if tool.ID == toolID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domainerrors.NotFoundf("ferramenta %s não encontrada", toolID)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domainerrors.Validation("nome não pode ser vazio")
		}
		tools[idx].Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		tools[idx].Description = strings.TrimSpace(*req.Description)
	}
	if req.URL != nil {
		if strings.TrimSpace(*req.URL) == "" {
			return nil, domainerrors.Validation("url não pode ser vazia")
		}
		tools[idx].URL = NormalizeURL(*req.URL)
	}
	if req.CategoryID != nil {
		tools[idx].CategoryID = *req.CategoryID
	}

	s.state.UpdateTools(tools)
	updated := tools[idx]
	return &updated, nil
}

// RemoveTool deletes a tool.
func (s *CatalogService) RemoveTool(toolID string) error {
	tools := s.state.Tools()
	idx := -1
	for i, tool := range tools {
		if tool.ID == toolID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainerrors.NotFoundf("ferramenta %s não encontrada", toolID)
	}

	s.state.UpdateTools(append(tools[:idx], tools[idx+1:]...))
	s.logger.Info("tool removed", slog.String("tool_id", toolID))
	return nil
}

// AddCategory creates a category. Names are unique, compared
// case-insensitively.
func (s *CatalogService) AddCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("nome da categoria não pode ser vazio")
	}

	categories := s.state.Categories()
	folded := catalog.Fold(name)
	for _, category := range categories {
		if catalog.Fold(category.Name) == folded {
			s.bus.Notify(events.LevelError, "Categoria já existe!")
			return nil, domainerrors.AlreadyExists("Categoria já existe!")
		}
	}

	category := domain.Category{ID: id.MustGenerate("cat"), Name: name}
	s.state.UpdateCategories(append(categories, category))
	s.logger.Info("category added", slog.String("category_id", category.ID), slog.String("name", name))
	return &category, nil
}

// EnsureCategory returns the category with the given name, creating it when
// absent. Lookup is case-insensitive.
func (s *CatalogService) EnsureCategory(name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("nome da categoria não pode ser vazio")
	}

	folded := catalog.Fold(name)
	for _, category := range s.state.Categories() {
		if catalog.Fold(category.Name) == folded {
			return &category, nil
		}
	}
	return s.AddCategory(name)
}

// RemoveCategory deletes a category together with every tool that references
// it. Both collections are committed in one step.
func (s *CatalogService) RemoveCategory(categoryID string) error {
	categories := s.state.Categories()
	idx := -1
	for i, category := range categories {
		if category.ID == categoryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainerrors.NotFoundf("categoria %s não encontrada", categoryID)
	}

	remaining := make([]domain.Tool, 0)
	removed := 0
	for _, tool := range s.state.Tools() {
		if tool.CategoryID == categoryID {
			removed++
			continue
		}
		remaining = append(remaining, tool)
	}

	s.state.UpdateCatalog(remaining, append(categories[:idx], categories[idx+1:]...))
	s.logger.Info("category removed with cascade",
		slog.String("category_id", categoryID),
		slog.Int("tools_removed", removed))
	return nil
}

// Search returns the tools matching the search term and category filter, in
// catalog order.
func (s *CatalogService) Search(search, categoryID string) []domain.Tool {
	return s.engine.Filter(s.state.Revision(), s.state.Tools(), catalog.Query{
		Search:   search,
		Category: categoryID,
	})
}

// Counts returns tool counts per category id, including the "all" total.
func (s *CatalogService) Counts() map[string]int {
	return catalog.Counts(s.state.Tools(), s.state.Categories())
}

// CategoryLabel resolves a category id to its display name, falling back to
// the placeholder label for dangling references.
func (s *CatalogService) CategoryLabel(categoryID string) string {
	return domain.LabelFor(s.state.Categories(), categoryID)
}

// ResetCatalog restores the shipped tool and category lists, discarding
// operator edits. Accounts, members and sessions are untouched.
func (s *CatalogService) ResetCatalog() {
	tools := append([]domain.Tool(nil), seed.DefaultTools...)
	categories := append([]domain.Category(nil), seed.DefaultCategories...)
	s.state.UpdateCatalog(tools, categories)
	s.bus.Notify(events.LevelInfo, "Dados restaurados!")
	s.logger.Info("catalog reset to shipped defaults")
}

// SetTheme switches the persisted theme.
func (s *CatalogService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return domainerrors.Validationf("tema inválido: %s", theme)
	}
	s.state.SetTheme(theme)
	return nil
}

// ToggleTheme flips between dark and light.
func (s *CatalogService) ToggleTheme() domain.Theme {
	next := domain.ThemeDark
	if s.state.Theme() == domain.ThemeDark {
		next = domain.ThemeLight
	}
	s.state.SetTheme(next)
	return next
}

// NormalizeURL prefixes https:// unless the value already carries an http or
// https scheme.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}
