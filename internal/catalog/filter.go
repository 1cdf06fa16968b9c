// Package catalog implements the in-memory tool filtering that backs the
// directory view: case-insensitive substring search over name and
// description, combined with a category filter. Results preserve the
// collection's insertion order.
package catalog

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/basetic/osint-terminal/internal/domain"
)

// AllCategories is the category filter sentinel meaning "no filter".
const AllCategories = "all"

// Fold lowercases s for caseless comparison, handling non-ASCII letters
// (accented Portuguese names included) correctly.
func Fold(s string) string {
	// cases.Fold returns a stateful Caser that is not safe for concurrent
	// use, so build one per call.
	return cases.Fold().String(s)
}

// Query is a normalized filter request.
type Query struct {
	Search   string
	Category string
}

// Normalize trims the search term and maps an empty category to the
// AllCategories sentinel.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	if q.Category == "" {
		q.Category = AllCategories
	}
	return q
}

// Engine filters tool collections and memoizes the last result. The cache is
// keyed on the state revision plus the normalized query, so repeated renders
// of an unchanged view cost nothing.
type Engine struct {
	mu         sync.Mutex
	lastRev    uint64
	lastQuery  Query
	lastResult []domain.Tool
	valid      bool
}

// NewEngine creates an empty filter engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Filter returns the tools matching q, in the order they appear in tools.
// rev identifies the tool collection's revision; passing the same rev and
// query again returns the memoized result.
func (e *Engine) Filter(rev uint64, tools []domain.Tool, q Query) []domain.Tool {
	q = q.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && e.lastRev == rev && e.lastQuery == q {
		return e.lastResult
	}

	result := filter(tools, q)
	e.lastRev = rev
	e.lastQuery = q
	e.lastResult = result
	e.valid = true
	return result
}

// Invalidate drops the memoized result.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.valid = false
	e.lastResult = nil
	e.mu.Unlock()
}

func filter(tools []domain.Tool, q Query) []domain.Tool {
	term := Fold(q.Search)

	result := make([]domain.Tool, 0, len(tools))
	for _, tool := range tools {
		if q.Category != AllCategories && tool.CategoryID != q.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(Fold(tool.Name), term) &&
			!strings.Contains(Fold(tool.Description), term) {
			continue
		}
		result = append(result, tool)
	}
	return result
}

// Counts returns the number of tools per category id, plus an AllCategories
// entry with the total. Every category present in categories gets an entry,
// zero included; tools referencing unknown categories still count toward the
// total.
func Counts(tools []domain.Tool, categories []domain.Category) map[string]int {
	counts := make(map[string]int, len(categories)+1)
	counts[AllCategories] = len(tools)
	for _, category := range categories {
		counts[category.ID] = 0
	}
	for _, tool := range tools {
		if _, ok := counts[tool.CategoryID]; ok {
			counts[tool.CategoryID]++
		}
	}
	return counts
}
