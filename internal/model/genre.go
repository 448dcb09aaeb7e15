package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Genre is a named tag attachable to many recipes. Name uniqueness is
// case-insensitive and enforced by the genre service before insert.
type Genre struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
