// Package storage handles rating import/export as JSONL and ephemeral SQLite queries.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/bookrec/internal/rating"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAllRatings reads all ratings from a JSONL file.
// Returns an error if any rating fails structural validation (fail-fast).
func ReadAllRatings(path string) ([]rating.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file returns empty slice
		}
		return nil, fmt.Errorf("opening ratings file: %w", err)
	}
	defer f.Close()

	return readRatings(f)
}

func readRatings(r io.Reader) ([]rating.Rating, error) {
	var ratings []rating.Rating
	scanner := bufio.NewScanner(r)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rt rating.Rating
		if err := json.Unmarshal(line, &rt); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if err := rt.ValidateForCreate(); err != nil {
			return nil, fmt.Errorf("invalid rating at line %d: %w", lineNum, err)
		}

		ratings = append(ratings, rt)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ratings file: %w", err)
	}

	return ratings, nil
}

// writeRatingJSONL marshals a rating to JSON and writes it as a JSONL line.
func writeRatingJSONL(w io.Writer, r rating.Rating) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding rating: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing rating: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}
	return nil
}

// AppendRating adds a rating to the end of a JSONL file.
func AppendRating(path string, r rating.Rating) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening ratings file for append: %w", err)
	}
	defer f.Close()

	return writeRatingJSONL(f, r)
}

// WriteAllRatings writes all ratings to a JSONL file, replacing existing content.
func WriteAllRatings(path string, ratings []rating.Rating) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ratings file: %w", err)
	}
	defer f.Close()

	for _, r := range ratings {
		if err := writeRatingJSONL(f, r); err != nil {
			return err
		}
	}

	return nil
}

// FindRatingInSlice searches for a rating by its key in an in-memory slice.
// Returns the index and true if found, -1 and false otherwise.
func FindRatingInSlice(ratings []rating.Rating, key rating.RatingKey) (int, bool) {
	for i, r := range ratings {
		if r.Reader == key.Reader && r.Book == key.Book {
			return i, true
		}
	}
	return -1, false
}

// UpsertRatingInSlice adds or updates a rating in an in-memory slice.
// Returns the updated slice and true if the rating was updated, false if added.
func UpsertRatingInSlice(ratings []rating.Rating, newRating rating.Rating) ([]rating.Rating, bool) {
	idx, found := FindRatingInSlice(ratings, newRating.Key())
	if found {
		ratings[idx] = newRating
		return ratings, true
	}
	return append(ratings, newRating), false
}
