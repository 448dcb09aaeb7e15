package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipe-notebook/backend/internal/model"
)

// GenreLimit is the maximum number of registered genres.
const GenreLimit = 30

// DefaultGenreNames is the fallback genre list used when the registry is
// unreachable, and the seed set for new installations.
var DefaultGenreNames = []string{
	"メインディッシュ",
	"サイドディッシュ",
	"デザート",
	"スープ",
	"スナック",
	"ドリンク",
}

const (
	genreNamesCacheKey = "genres:names"
	genreNamesCacheTTL = 5 * time.Minute
)

// RecipeGenrePatcher removes a deleted genre name from every recipe that
// references it.
type RecipeGenrePatcher interface {
	RemoveGenreFromAll(ctx context.Context, name string) (patched, failed int)
}

// GenreService manages the genre registry: uniqueness, the registry cap,
// and keeping recipe genre lists consistent when a genre is deleted.
type GenreService struct {
	db      *gorm.DB
	cache   *redis.Client
	recipes RecipeGenrePatcher
}

// NewGenreService creates a new GenreService instance. cache may be nil,
// in which case name lookups always hit the database.
func NewGenreService(db *gorm.DB, cache *redis.Client, recipes RecipeGenrePatcher) *GenreService {
	return &GenreService{db: db, cache: cache, recipes: recipes}
}

// List returns all genres ordered by name.
func (s *GenreService) List(ctx context.Context) ([]model.Genre, error) {
	var genres []model.Genre
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// Names returns the registered genre names for filter dropdowns. This is a
// secondary read: cache and database failures degrade to the default genre
// list instead of failing the page.
func (s *GenreService) Names(ctx context.Context) []string {
	if names, ok := s.cachedNames(ctx); ok {
		return names
	}
	genres, err := s.List(ctx)
	if err != nil {
		log.Printf("[GenreService] falling back to default genres: %v", err)
		return append([]string(nil), DefaultGenreNames...)
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	s.storeNames(ctx, names)
	return names
}

// Refresh drops the cached name list and reloads it from the database. The
// UI layer calls this on its visibility-change signal.
func (s *GenreService) Refresh(ctx context.Context) []string {
	if s.cache != nil {
		if err := s.cache.Del(ctx, genreNamesCacheKey).Err(); err != nil {
			log.Printf("[GenreService] cache invalidation failed: %v", err)
		}
	}
	return s.Names(ctx)
}

// Add registers a new genre. Validation and the registry cap are checked
// before any insert is attempted.
func (s *GenreService) Add(ctx context.Context, name string) (*model.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGenreName
	}

	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) >= GenreLimit {
		return nil, ErrGenreLimit
	}
	for _, g := range existing {
		if strings.EqualFold(g.Name, name) {
			return nil, ErrDuplicateGenre
		}
	}

	genre := model.Genre{Name: name}
	if err := s.db.WithContext(ctx).Create(&genre).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &genre, nil
}

// Rename updates a genre's name. Recipes that carry the old name keep it:
// the rename is not propagated into recipe genre arrays, matching the
// registry's historical behavior.
func (s *GenreService) Rename(ctx context.Context, id uuid.UUID, name string) (*model.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyGenreName
	}

	var genre model.Genre
	if err := s.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&genre).Update("name", name).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &genre, nil
}

// Delete removes a genre and cascades the removal of its name into every
// recipe referencing it. Recipe patches run first; their failures are
// logged only, and the operation succeeds if the genre row itself was
// removed.
func (s *GenreService) Delete(ctx context.Context, id uuid.UUID) error {
	var genre model.Genre
	if err := s.db.WithContext(ctx).First(&genre, "id = ?", id).Error; err != nil {
		return err
	}

	patched, failed := s.recipes.RemoveGenreFromAll(ctx, genre.Name)
	if failed > 0 {
		log.Printf("[GenreService] genre %q cascade left %d recipe(s) unpatched (%d patched)", genre.Name, failed, patched)
	}

	if err := s.db.WithContext(ctx).Delete(&model.Genre{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GenreService) cachedNames(ctx context.Context) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, genreNamesCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[GenreService] cache read failed: %v", err)
		}
		return nil, false
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, false
	}
	return names, true
}

func (s *GenreService) storeNames(ctx context.Context, names []string) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, genreNamesCacheKey, raw, genreNamesCacheTTL).Err(); err != nil {
		log.Printf("[GenreService] cache write failed: %v", err)
	}
}

func (s *GenreService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, genreNamesCacheKey).Err(); err != nil {
		log.Printf("[GenreService] cache invalidation failed: %v", err)
	}
}
