// Package dataset loads the reader, book and rating lists that seed a library graph.
package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/rating"
	"gopkg.in/yaml.v3"
)

//go:embed library.yml
var defaultLibrary []byte

// Dataset is a complete seed library.
type Dataset struct {
	Readers []string        `yaml:"readers"`
	Books   []string        `yaml:"books"`
	Ratings []rating.Rating `yaml:"ratings"`
}

// Validation errors.
var (
	ErrNoReaders       = errors.New("dataset has no readers")
	ErrDuplicateReader = errors.New("duplicate reader")
	ErrDuplicateBook   = errors.New("duplicate book")
	ErrDuplicateRating = errors.New("duplicate rating")
	ErrUnknownReader   = errors.New("rating references unknown reader")
	ErrUnknownBook     = errors.New("rating references unknown book")
)

// Default returns the built-in sample library.
func Default() (*Dataset, error) {
	return Parse(defaultLibrary)
}

// LoadFile reads a dataset from a YAML file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks that names are unique, every rating refers to a configured
// reader and book, weights are in range and no (reader, book) pair repeats.
func (d *Dataset) Validate() error {
	if len(d.Readers) == 0 {
		return ErrNoReaders
	}

	readers, err := uniqueSet(d.Readers, ErrDuplicateReader)
	if err != nil {
		return err
	}
	books, err := uniqueSet(d.Books, ErrDuplicateBook)
	if err != nil {
		return err
	}

	seen := make(map[rating.RatingKey]bool, len(d.Ratings))
	for i, r := range d.Ratings {
		if err := r.ValidateForCreate(); err != nil {
			return fmt.Errorf("invalid rating %d: %w", i+1, err)
		}
		if !readers[r.Reader] {
			return fmt.Errorf("rating %d: %w: %s", i+1, ErrUnknownReader, r.Reader)
		}
		if !books[r.Book] {
			return fmt.Errorf("rating %d: %w: %s", i+1, ErrUnknownBook, r.Book)
		}
		if seen[r.Key()] {
			return fmt.Errorf("rating %d: %w: %s / %s", i+1, ErrDuplicateRating, r.Reader, r.Book)
		}
		seen[r.Key()] = true
	}
	return nil
}

// Graph builds a library graph populated with the dataset's ratings.
func (d *Dataset) Graph() (*library.Graph, error) {
	g := library.New(d.Readers, d.Books)
	for _, r := range d.Ratings {
		if err := g.AddRating(r); err != nil {
			return nil, fmt.Errorf("adding rating %s / %s: %w", r.Reader, r.Book, err)
		}
	}
	return g, nil
}

func uniqueSet(names []string, dupErr error) (map[string]bool, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if set[n] {
			return nil, fmt.Errorf("%w: %s", dupErr, n)
		}
		set[n] = true
	}
	return set, nil
}
