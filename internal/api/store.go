package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/pngme/pkg/png"
)

type imageRecord struct {
	mu        sync.Mutex
	png       *png.Png
	createdAt time.Time
}

// ImageStore keeps uploaded images in memory. Each image is guarded by its own
// mutex since png.Png is not safe for concurrent use.
type ImageStore struct {
	mu     sync.Mutex
	images map[string]*imageRecord
}

func NewImageStore() *ImageStore {
	return &ImageStore{
		images: make(map[string]*imageRecord),
	}
}

// Create stores p and returns its ID. The store takes ownership of p.
func (s *ImageStore) Create(p *png.Png, now time.Time) string {
	id := "img_" + uuid.NewString()
	s.mu.Lock()
	s.images[id] = &imageRecord{png: p, createdAt: now}
	s.mu.Unlock()
	return id
}

func (s *ImageStore) lookup(id string) (*imageRecord, error) {
	s.mu.Lock()
	rec, ok := s.images[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrImageNotFound, id)
	}
	return rec, nil
}

// With runs fn with exclusive access to the image.
func (s *ImageStore) With(id string, fn func(p *png.Png) error) error {
	rec, err := s.lookup(id)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return fn(rec.png)
}

// CreatedAt returns the time the image was stored.
func (s *ImageStore) CreatedAt(id string) (time.Time, error) {
	rec, err := s.lookup(id)
	if err != nil {
		return time.Time{}, err
	}
	return rec.createdAt, nil
}

func (s *ImageStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return false
	}
	delete(s.images, id)
	return true
}

func (s *ImageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
