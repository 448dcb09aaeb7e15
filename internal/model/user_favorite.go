package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFavorite marks a recipe as a favorite of one browser identity.
// The composite unique index keeps at most one row per (user, recipe).
type UserFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `gorm:"size:255;not null;index;uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_recipe" json:"recipe_id"`
}

func (UserFavorite) TableName() string {
	return "user_favorites"
}

func (f *UserFavorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
