package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Contains reports whether the array holds name exactly (case-sensitive).
func (a JSONBStringArray) Contains(name string) bool {
	for _, s := range a {
		if s == name {
			return true
		}
	}
	return false
}

// Without returns a copy of the array with every occurrence of name removed.
func (a JSONBStringArray) Without(name string) JSONBStringArray {
	out := make(JSONBStringArray, 0, len(a))
	for _, s := range a {
		if s != name {
			out = append(out, s)
		}
	}
	return out
}

// Recipe is a user-authored dish note. Ingredients and instructions are
// newline-delimited free text; the first entry of ImageURLs is the cover
// image and ImageURL mirrors it for older clients.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Ingredients  string           `gorm:"type:text" json:"ingredients"`
	Instructions string           `gorm:"type:text" json:"instructions"`
	Genres       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"genres"`
	Memo         string           `gorm:"type:text" json:"memo"`
	ReferenceURL *string          `gorm:"size:2048" json:"reference_url"`
	ImageURL     *string          `gorm:"size:2048" json:"image_url"`
	ImageURLs    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"image_urls"`
	LastViewedAt *time.Time       `gorm:"index" json:"last_viewed_at"`
}

// BeforeCreate assigns the ID so inserts behave the same on postgres and
// the sqlite test driver.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SyncCoverImage sets ImageURL to the first uploaded image, or clears it
// when no images remain.
func (r *Recipe) SyncCoverImage() {
	if len(r.ImageURLs) > 0 {
		cover := r.ImageURLs[0]
		r.ImageURL = &cover
		return
	}
	r.ImageURL = nil
}
