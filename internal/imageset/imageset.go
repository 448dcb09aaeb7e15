// Package imageset reconciles a recipe's ordered image list while it is
// being created or edited: URLs already persisted on the server followed by
// files attached locally but not yet uploaded. The element at index 0 of
// that combined view is the cover image.
package imageset

import (
	"context"
	"log"
)

// MaxImages is the maximum number of images a recipe may carry.
const MaxImages = 5

// Upload is a locally attached file pending upload.
type Upload struct {
	Name string
	Data []byte
}

// Uploader stores one file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Set holds the combined image state for one recipe form.
type Set struct {
	existing  []string
	pending   []Upload
	maxImages int
}

// New builds a Set seeded with the recipe's persisted image URLs.
// maxImages <= 0 falls back to MaxImages.
func New(existing []string, maxImages int) *Set {
	if maxImages <= 0 {
		maxImages = MaxImages
	}
	s := &Set{
		existing:  append([]string(nil), existing...),
		maxImages: maxImages,
	}
	return s
}

// Len is the combined count of persisted URLs and pending uploads.
func (s *Set) Len() int {
	return len(s.existing) + len(s.pending)
}

// Existing returns a copy of the persisted URLs currently kept.
func (s *Set) Existing() []string {
	return append([]string(nil), s.existing...)
}

// Add appends a pending upload. At the image cap it is a silent no-op.
func (s *Set) Add(u Upload) {
	if s.Len() >= s.maxImages {
		return
	}
	s.pending = append(s.pending, u)
}

// DeleteAt removes the element at the unified index: persisted URLs come
// first, pending uploads after. Out-of-range indexes are a no-op.
func (s *Set) DeleteAt(i int) {
	if i < 0 || i >= s.Len() {
		return
	}
	if i < len(s.existing) {
		s.existing = append(s.existing[:i], s.existing[i+1:]...)
		return
	}
	i -= len(s.existing)
	s.pending = append(s.pending[:i], s.pending[i+1:]...)
}

// Result is the outcome of a Commit. URLs is the final ordered image list
// to persist; Failed names the uploads that were dropped.
type Result struct {
	URLs     []string
	Uploaded []string
	Failed   []string
}

// CoverURL returns the first image URL, or nil when the list is empty.
func (r Result) CoverURL() *string {
	if len(r.URLs) == 0 {
		return nil
	}
	return &r.URLs[0]
}

// Commit uploads the pending files one at a time, in order. A failed upload
// drops that file only: remaining uploads and the save itself proceed.
func (s *Set) Commit(ctx context.Context, uploader Uploader) Result {
	result := Result{URLs: append([]string(nil), s.existing...)}
	for _, u := range s.pending {
		url, err := uploader.Upload(ctx, u.Name, u.Data)
		if err != nil {
			log.Printf("[ImageSet] upload of %s failed, skipping: %v", u.Name, err)
			result.Failed = append(result.Failed, u.Name)
			continue
		}
		result.URLs = append(result.URLs, url)
		result.Uploaded = append(result.Uploaded, url)
	}
	return result
}
