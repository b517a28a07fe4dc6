// Package store keeps named rasters for the command layer and the MCP server.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/image-wizard/internal/raster"
)

// ErrImageNotFound is returned by Get when no raster is stored under a name.
var ErrImageNotFound = errors.New("store: image not found")

// Store maps image names to rasters.
//
// Rasters are immutable, so the same *raster.Raster can be handed to any
// number of readers; Put simply rebinds a name. Store is safe for concurrent
// use by multiple goroutines.
//
// # Memory Management
//
// Stored rasters remain in memory until removed via Delete() or Clear().
//
// # Example Usage
//
//	s := store.New()
//	s.Put("cat", r)
//	r, err := s.Get("cat")
//	if errors.Is(err, store.ErrImageNotFound) {
//	    // ...
//	}
type Store struct {
	mu     sync.RWMutex
	images map[string]*raster.Raster
}

// New creates an empty store.
func New() *Store {
	return &Store{
		images: make(map[string]*raster.Raster),
	}
}

// Get returns the raster stored under name.
//
// The error wraps ErrImageNotFound and carries the missing name.
func (s *Store) Get(name string) (*raster.Raster, error) {
	s.mu.RLock()
	r, ok := s.images[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, name)
	}
	return r, nil
}

// Put binds name to r, replacing any previous binding.
func (s *Store) Put(name string, r *raster.Raster) {
	s.mu.Lock()
	s.images[name] = r
	s.mu.Unlock()
}

// Delete removes name from the store. Missing names are ignored.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	delete(s.images, name)
	s.mu.Unlock()
}

// Clear removes every stored raster.
func (s *Store) Clear() {
	s.mu.Lock()
	s.images = make(map[string]*raster.Raster)
	s.mu.Unlock()
}

// Names returns the stored names in lexical order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of stored rasters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
