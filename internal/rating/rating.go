// Package rating defines the core domain type for reader-book rating edges.
package rating

import (
	"errors"
	"fmt"
)

// Weight bounds and the values with special meaning to the recommender.
const (
	MinWeight = 1
	MaxWeight = 5

	// DemotionWeight is written for a rejected recommendation.
	DemotionWeight = 1

	// RecommendThreshold is the lowest weight a neighbor must have given a book
	// for it to be recommended.
	RecommendThreshold = 4
)

// Rating represents a directed reader -> book edge carrying a weight.
type Rating struct {
	// Identity: (Reader, Book) pair
	Reader string `json:"reader" yaml:"reader"`
	Book   string `json:"book" yaml:"book"`

	Weight int `json:"weight" yaml:"weight"`
}

// Validation errors.
var (
	ErrEmptyReader      = errors.New("reader is required")
	ErrEmptyBook        = errors.New("book is required")
	ErrWeightOutOfRange = fmt.Errorf("weight must be between %d and %d", MinWeight, MaxWeight)
)

// ValidateForCreate validates a rating for insertion into a graph.
func (r *Rating) ValidateForCreate() error {
	if r.Reader == "" {
		return ErrEmptyReader
	}
	if r.Book == "" {
		return ErrEmptyBook
	}
	if r.Weight < MinWeight || r.Weight > MaxWeight {
		return ErrWeightOutOfRange
	}
	return nil
}

// Key returns the unique identity of this rating.
func (r *Rating) Key() RatingKey {
	return RatingKey{Reader: r.Reader, Book: r.Book}
}

// RatingKey represents the unique identity of a rating edge.
type RatingKey struct {
	Reader string
	Book   string
}
