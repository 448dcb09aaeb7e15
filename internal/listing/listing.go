// Package listing computes the visible page of a recipe list from the full
// in-memory collection and the current search/filter state. Everything here
// is pure: same inputs, same outputs, input slices never mutated.
package listing

import (
	"strings"

	"github.com/recipe-notebook/backend/internal/model"
)

// AllGenres is the genre filter sentinel meaning "no filter".
const AllGenres = "すべて"

// DefaultPageSize is the number of recipes shown per page.
const DefaultPageSize = 10

// Ellipsis is the collapsed-range token in a page button row.
const Ellipsis = -1

// Filter is the current search/filter state of a list screen.
type Filter struct {
	Query string
	Genre string
}

// Matches reports whether a recipe satisfies both filter predicates.
// The query matches on title, description, or ingredients (never on
// instructions), case-insensitively; the genre must match exactly unless
// the AllGenres sentinel is selected.
func Matches(r model.Recipe, f Filter) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(r.Title), q) &&
			!strings.Contains(strings.ToLower(r.Description), q) &&
			!strings.Contains(strings.ToLower(r.Ingredients), q) {
			return false
		}
	}
	if f.Genre != "" && f.Genre != AllGenres {
		if !r.Genres.Contains(f.Genre) {
			return false
		}
	}
	return true
}

// Apply returns the recipes matching f, preserving input order.
func Apply(recipes []model.Recipe, f Filter) []model.Recipe {
	matched := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Matches(r, f) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Page is one visible window of a filtered list. StartIndex/EndIndex are
// the slice bounds before clamping to the item count, mirroring the
// "N件中 X-Y件を表示" footer.
type Page struct {
	Items      []model.Recipe
	Number     int
	TotalPages int
	TotalItems int
	StartIndex int
	EndIndex   int
}

// Paginate slices items into the requested page. Invalid page numbers are
// clamped rather than rejected: below 1 becomes 1, past the last page
// becomes the last page (so deleting the final item of the last page moves
// the view back one page). An empty collection yields zero pages and an
// empty slice.
func Paginate(items []model.Recipe, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalItems := len(items)
	totalPages := (totalItems + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	visible := []model.Recipe{}
	if start < totalItems {
		if end > totalItems {
			visible = items[start:totalItems]
		} else {
			visible = items[start:end]
		}
	}

	return Page{
		Items:      visible,
		Number:     page,
		TotalPages: totalPages,
		TotalItems: totalItems,
		StartIndex: start,
		EndIndex:   end,
	}
}

// PageButtons produces the numbered page-button row. With seven or fewer
// pages every page gets a button. Beyond that the row is: page 1, at most
// one Ellipsis, a window around the current page (or a five-page block when
// the current page is within three of a boundary), at most one Ellipsis,
// and the last page. The first and last page are never collapsed.
func PageButtons(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 7 {
		buttons := make([]int, total)
		for i := range buttons {
			buttons[i] = i + 1
		}
		return buttons
	}

	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	switch {
	case current <= 3:
		return []int{1, 2, 3, 4, 5, Ellipsis, total}
	case current >= total-2:
		return []int{1, Ellipsis, total - 4, total - 3, total - 2, total - 1, total}
	default:
		return []int{1, Ellipsis, current - 1, current, current + 1, Ellipsis, total}
	}
}
