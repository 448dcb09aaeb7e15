package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-notebook/backend/internal/model"
)

// recipeListOrder is the listing order: recently viewed first, never-viewed
// recipes after that by creation time.
const recipeListOrder = "last_viewed_at DESC NULLS LAST, created_at DESC"

// RecipeService handles recipe persistence.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create validates and inserts a new recipe. The cover image field is
// derived from the image list before insert.
func (s *RecipeService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Title = strings.TrimSpace(recipe.Title)
	if recipe.Title == "" {
		return nil, ErrEmptyTitle
	}
	recipe.SyncCoverImage()
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get retrieves a recipe by ID without side effects.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// View retrieves a recipe for the detail screen and refreshes its
// last-viewed timestamp, which drives the listing order.
func (s *RecipeService) View(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(recipe).Update("last_viewed_at", now).Error; err != nil {
		// The read succeeded; a failed touch only affects future ordering.
		log.Printf("[RecipeService] failed to update last_viewed_at for %s: %v", id, err)
		return recipe, nil
	}
	recipe.LastViewedAt = &now
	return recipe, nil
}

// Update persists the given fields onto an existing recipe and returns the
// stored row. The caller supplies the fully reconciled image list.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Title = strings.TrimSpace(recipe.Title)
	if recipe.Title == "" {
		return nil, ErrEmptyTitle
	}
	recipe.SyncCoverImage()

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":         recipe.Title,
		"description":   recipe.Description,
		"ingredients":   recipe.Ingredients,
		"instructions":  recipe.Instructions,
		"genres":        recipe.Genres,
		"memo":          recipe.Memo,
		"reference_url": recipe.ReferenceURL,
		"image_url":     recipe.ImageURL,
		"image_urls":    recipe.ImageURLs,
	}
	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// SetImages replaces a recipe's image list, keeping the cover field in
// sync with the first entry.
func (s *RecipeService) SetImages(ctx context.Context, id uuid.UUID, urls []string) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.ImageURLs = model.JSONBStringArray(urls)
	recipe.SyncCoverImage()
	updates := map[string]interface{}{
		"image_urls": recipe.ImageURLs,
		"image_url":  recipe.ImageURL,
	}
	if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Delete removes a recipe. Missing rows surface as gorm.ErrRecordNotFound.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
}

// List returns every recipe in listing order.
func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order(recipeListOrder).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// RemoveGenreFromAll strips the exact genre name from every recipe that
// references it. The store has no cascade, so this is a scan-and-patch:
// each failed patch is logged and counted but does not stop the rest.
func (s *RecipeService) RemoveGenreFromAll(ctx context.Context, name string) (patched, failed int) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Find(&recipes).Error; err != nil {
		log.Printf("[RecipeService] genre cascade scan failed for %q: %v", name, err)
		return 0, 0
	}
	for i := range recipes {
		if !recipes[i].Genres.Contains(name) {
			continue
		}
		updated := recipes[i].Genres.Without(name)
		err := s.db.WithContext(ctx).Model(&recipes[i]).Update("genres", updated).Error
		if err != nil {
			log.Printf("[RecipeService] failed to remove genre %q from recipe %s: %v", name, recipes[i].ID, err)
			failed++
			continue
		}
		patched++
	}
	return patched, failed
}
