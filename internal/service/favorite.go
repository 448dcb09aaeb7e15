package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-notebook/backend/internal/model"
)

// FavoriteService manages the per-user favorite ledger.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService instance.
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Toggle flips the favorite membership of (userID, recipeID) and returns
// the new state. Toggling twice restores the original membership. The
// check and the mutation run in one transaction so concurrent toggles on
// the same pair cannot create duplicate rows past the unique index.
func (s *FavoriteService) Toggle(ctx context.Context, userID string, recipeID uuid.UUID) (favorited bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.UserFavorite
		lookupErr := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
		if lookupErr == nil {
			favorited = false
			return tx.Delete(&model.UserFavorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID).Error
		}
		if lookupErr != gorm.ErrRecordNotFound {
			return lookupErr
		}
		favorited = true
		return tx.Create(&model.UserFavorite{UserID: userID, RecipeID: recipeID}).Error
	})
	return favorited, err
}

// ListIDs returns the recipe IDs the user has favorited, newest first.
func (s *FavoriteService) ListIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	var favorites []model.UserFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(favorites))
	for i, f := range favorites {
		ids[i] = f.RecipeID
	}
	return ids, nil
}

// IsFavorite reports whether the user has favorited the recipe.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID string, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
