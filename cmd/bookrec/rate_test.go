package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/bookrec/internal/rating"
	"github.com/matsen/bookrec/internal/storage"
)

func TestRecordRating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.jsonl")

	steps := []struct {
		r           rating.Rating
		wantUpdated bool
	}{
		{rating.Rating{Reader: "Cat", Book: "Dune", Weight: 5}, false},
		{rating.Rating{Reader: "James", Book: "Dune", Weight: 2}, false},
		{rating.Rating{Reader: "Cat", Book: "Dune", Weight: 1}, true},
	}
	for _, s := range steps {
		updated, err := recordRating(path, s.r)
		if err != nil {
			t.Fatalf("recordRating(%+v) error = %v", s.r, err)
		}
		if updated != s.wantUpdated {
			t.Errorf("recordRating(%+v) updated = %v, want %v", s.r, updated, s.wantUpdated)
		}
	}

	got, err := storage.ReadAllRatings(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []rating.Rating{
		{Reader: "Cat", Book: "Dune", Weight: 1},
		{Reader: "James", Book: "Dune", Weight: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("file ratings = %+v, want %+v", got, want)
	}
}

func TestRecordRating_OverlayAffectsGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.jsonl")
	if _, err := recordRating(path, rating.Rating{Reader: "Cat", Book: "Dune", Weight: 4}); err != nil {
		t.Fatal(err)
	}

	g, err := loadGraph("", path)
	if err != nil {
		t.Fatalf("loadGraph() error = %v", err)
	}
	if w, ok := g.RatingOf("Cat", "Dune"); !ok || w != 4 {
		t.Errorf("RatingOf(Cat, Dune) = %d, %v; want 4, true", w, ok)
	}
}
