// Package imagedb holds the reference images the AR runtime tracks as
// augmented images.
package imagedb

import (
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"
)

// Entry is one registered reference image.
type Entry struct {
	Index       int
	Name        string
	WidthMeters float64
	// Pixel size of the decoded image.
	Width, Height int
	// Fingerprint is an xxhash of the grayscale pixels, the form the
	// runtime tracks.
	Fingerprint uint64
}

// Database is the set of reference images, indexed in registration order.
type Database struct {
	mu      sync.RWMutex
	entries []Entry
	byName  map[string]int
	byPrint map[uint64]int
}

func New() *Database {
	return &Database{
		byName:  make(map[string]int),
		byPrint: make(map[uint64]int),
	}
}

// AddImage registers img under name with its physical width in meters and
// returns its index.
func (db *Database) AddImage(name string, img image.Image, widthMeters float64) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}
	if !(widthMeters > 0) {
		return -1, fmt.Errorf("%w: %q has %v", ErrInvalidWidth, name, widthMeters)
	}
	if img == nil || img.Bounds().Empty() {
		return -1, fmt.Errorf("%w: %q", ErrEmptyImage, name)
	}

	gray := imaging.Grayscale(img)
	fp := xxhash.Sum64(gray.Pix)

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, exists := db.byName[name]; exists {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if idx, exists := db.byPrint[fp]; exists {
		return -1, fmt.Errorf("%w: %q matches %q", ErrDuplicateImage, name, db.entries[idx].Name)
	}

	idx := len(db.entries)
	db.entries = append(db.entries, Entry{
		Index:       idx,
		Name:        name,
		WidthMeters: widthMeters,
		Width:       gray.Bounds().Dx(),
		Height:      gray.Bounds().Dy(),
		Fingerprint: fp,
	})
	db.byName[name] = idx
	db.byPrint[fp] = idx
	return idx, nil
}

func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.entries)
}

func (db *Database) Lookup(name string) (Entry, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	idx, ok := db.byName[name]
	if !ok {
		return Entry{}, false
	}
	return db.entries[idx], true
}

// Entries returns a copy of all entries in index order.
func (db *Database) Entries() []Entry {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Clone(db.entries)
}

func (db *Database) Names() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, len(db.entries))
	for i, e := range db.entries {
		names[i] = e.Name
	}
	return names
}
