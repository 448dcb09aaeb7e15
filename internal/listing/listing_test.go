package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-notebook/backend/internal/model"
)

func sampleRecipes() []model.Recipe {
	return []model.Recipe{
		{Title: "Carbonara", Description: "creamy pasta", Ingredients: "pasta, bacon, egg", Genres: model.JSONBStringArray{"Main"}},
		{Title: "Soup", Description: "warm", Ingredients: "onion, broth", Genres: model.JSONBStringArray{"Soup"}},
	}
}

func TestApplySearchMatchesTitle(t *testing.T) {
	got := Apply(sampleRecipes(), Filter{Query: "carbo", Genre: AllGenres})

	require.Len(t, got, 1)
	assert.Equal(t, "Carbonara", got[0].Title)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	recipes := sampleRecipes()

	assert.Len(t, Apply(recipes, Filter{Query: "CARBO"}), 1)
	assert.Len(t, Apply(recipes, Filter{Query: "BACON"}), 1)
	assert.Len(t, Apply(recipes, Filter{Query: "warm"}), 1)
}

func TestApplyDoesNotSearchInstructions(t *testing.T) {
	recipes := []model.Recipe{
		{Title: "Plain", Instructions: "simmer gently"},
	}

	assert.Empty(t, Apply(recipes, Filter{Query: "simmer"}))
}

func TestApplyGenreFilterIsExact(t *testing.T) {
	recipes := sampleRecipes()

	got := Apply(recipes, Filter{Genre: "Soup"})
	require.Len(t, got, 1)
	assert.Equal(t, "Soup", got[0].Title)

	// Case-sensitive membership, unlike the text search.
	assert.Empty(t, Apply(recipes, Filter{Genre: "soup"}))
}

func TestApplyCombinesPredicatesWithAnd(t *testing.T) {
	recipes := sampleRecipes()

	assert.Empty(t, Apply(recipes, Filter{Query: "carbo", Genre: "Soup"}))
	assert.Len(t, Apply(recipes, Filter{Query: "carbo", Genre: "Main"}), 1)
}

func TestApplyIsDeterministicAndOrderPreserving(t *testing.T) {
	recipes := make([]model.Recipe, 0, 30)
	for i := 0; i < 30; i++ {
		recipes = append(recipes, model.Recipe{Title: fmt.Sprintf("Recipe %02d", i)})
	}

	first := Apply(recipes, Filter{Query: "recipe"})
	second := Apply(recipes, Filter{Query: "recipe"})

	assert.Equal(t, first, second)
	for i := range first {
		assert.Equal(t, recipes[i].Title, first[i].Title)
	}
}

func TestPaginateWindow(t *testing.T) {
	recipes := make([]model.Recipe, 23)
	for i := range recipes {
		recipes[i].Title = fmt.Sprintf("r%d", i)
	}

	page := Paginate(recipes, 3, 10)

	assert.Equal(t, 20, page.StartIndex)
	assert.Equal(t, 30, page.EndIndex)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 23, page.TotalItems)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "r20", page.Items[0].Title)
}

func TestPaginateConcatenationReproducesInput(t *testing.T) {
	recipes := make([]model.Recipe, 37)
	for i := range recipes {
		recipes[i].Title = fmt.Sprintf("r%d", i)
	}

	var joined []model.Recipe
	total := Paginate(recipes, 1, 10).TotalPages
	for p := 1; p <= total; p++ {
		page := Paginate(recipes, p, 10)
		if p < total {
			assert.Len(t, page.Items, 10)
		} else {
			assert.Len(t, page.Items, 7)
		}
		joined = append(joined, page.Items...)
	}

	assert.Equal(t, recipes, joined)
}

func TestPaginateClampsOutOfRangePage(t *testing.T) {
	recipes := make([]model.Recipe, 15)

	page := Paginate(recipes, 9, 10)
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Items, 5)

	page = Paginate(recipes, 0, 10)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 10)

	page = Paginate(recipes, -3, 10)
	assert.Equal(t, 1, page.Number)
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate(nil, 1, 10)

	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
}

func TestPageButtonsAllShownUpToSeven(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, PageButtons(4, 7))
	assert.Equal(t, []int{1, 2, 3}, PageButtons(2, 3))
	assert.Nil(t, PageButtons(1, 0))
}

func TestPageButtonsStartWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, Ellipsis, 10}, PageButtons(1, 10))
	assert.Equal(t, []int{1, 2, 3, 4, 5, Ellipsis, 10}, PageButtons(3, 10))
}

func TestPageButtonsEndWindow(t *testing.T) {
	assert.Equal(t, []int{1, Ellipsis, 6, 7, 8, 9, 10}, PageButtons(8, 10))
	assert.Equal(t, []int{1, Ellipsis, 6, 7, 8, 9, 10}, PageButtons(10, 10))
}

func TestPageButtonsMiddleWindow(t *testing.T) {
	assert.Equal(t, []int{1, Ellipsis, 4, 5, 6, Ellipsis, 10}, PageButtons(5, 10))

	// First and last pages are never collapsed, one ellipsis per side.
	buttons := PageButtons(50, 100)
	assert.Equal(t, 1, buttons[0])
	assert.Equal(t, 100, buttons[len(buttons)-1])
	ellipses := 0
	for _, b := range buttons {
		if b == Ellipsis {
			ellipses++
		}
	}
	assert.Equal(t, 2, ellipses)
}
