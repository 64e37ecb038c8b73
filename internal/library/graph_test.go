package library

import (
	"errors"
	"reflect"
	"testing"

	"github.com/matsen/bookrec/internal/rating"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := New([]string{"Cat", "James", "Zoe"}, []string{"Twilight", "Kindred", "Uglies"})
	for _, r := range []rating.Rating{
		{Reader: "Cat", Book: "Twilight", Weight: 3},
		{Reader: "Cat", Book: "Kindred", Weight: 5},
		{Reader: "James", Book: "Kindred", Weight: 4},
	} {
		if err := g.AddRating(r); err != nil {
			t.Fatalf("AddRating(%+v): %v", r, err)
		}
	}
	return g
}

func TestGraph_AddRating(t *testing.T) {
	tests := []struct {
		name    string
		rating  rating.Rating
		wantErr error
	}{
		{
			name:   "new edge",
			rating: rating.Rating{Reader: "Zoe", Book: "Uglies", Weight: 4},
		},
		{
			name:   "book outside configured list is accepted",
			rating: rating.Rating{Reader: "Zoe", Book: "Dune", Weight: 5},
		},
		{
			name:    "unknown reader",
			rating:  rating.Rating{Reader: "Zed", Book: "Uglies", Weight: 4},
			wantErr: ErrUnknownReader,
		},
		{
			name:    "invalid weight",
			rating:  rating.Rating{Reader: "Cat", Book: "Uglies", Weight: 9},
			wantErr: rating.ErrWeightOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t)
			err := g.AddRating(tt.rating)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddRating() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			w, ok := g.RatingOf(tt.rating.Reader, tt.rating.Book)
			if !ok || w != tt.rating.Weight {
				t.Errorf("RatingOf() = (%d, %v), want (%d, true)", w, ok, tt.rating.Weight)
			}
		})
	}
}

func TestGraph_OverwriteKeepsOrder(t *testing.T) {
	g := newTestGraph(t)

	if err := g.AddRating(rating.Rating{Reader: "Cat", Book: "Twilight", Weight: rating.DemotionWeight}); err != nil {
		t.Fatalf("AddRating: %v", err)
	}

	if got, want := g.RatedBooks("Cat"), []string{"Twilight", "Kindred"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RatedBooks() = %v, want %v", got, want)
	}
	if w := g.WeightOrZero("Cat", "Twilight"); w != rating.DemotionWeight {
		t.Errorf("weight after overwrite = %d, want %d", w, rating.DemotionWeight)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (overwrite must not add an edge)", g.Len())
	}
}

func TestGraph_RatedBooks(t *testing.T) {
	g := newTestGraph(t)

	tests := []struct {
		reader string
		want   []string
	}{
		{"Cat", []string{"Twilight", "Kindred"}},
		{"James", []string{"Kindred"}},
		{"Zoe", nil},
		{"Zed", nil},
	}

	for _, tt := range tests {
		t.Run(tt.reader, func(t *testing.T) {
			if got := g.RatedBooks(tt.reader); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RatedBooks(%q) = %v, want %v", tt.reader, got, tt.want)
			}
		})
	}
}

func TestGraph_RatedBooksReturnsCopy(t *testing.T) {
	g := newTestGraph(t)

	books := g.RatedBooks("Cat")
	books[0] = "mutated"

	if got := g.RatedBooks("Cat")[0]; got != "Twilight" {
		t.Errorf("graph was mutated through RatedBooks result: %q", got)
	}
}

func TestGraph_WeightOrZero(t *testing.T) {
	g := newTestGraph(t)

	if w := g.WeightOrZero("James", "Kindred"); w != 4 {
		t.Errorf("WeightOrZero(existing) = %d, want 4", w)
	}
	if w := g.WeightOrZero("James", "Twilight"); w != 0 {
		t.Errorf("WeightOrZero(missing edge) = %d, want 0", w)
	}
	if w := g.WeightOrZero("Zed", "Twilight"); w != 0 {
		t.Errorf("WeightOrZero(unknown reader) = %d, want 0", w)
	}
	if _, ok := g.RatingOf("James", "Twilight"); ok {
		t.Error("RatingOf(missing edge) reported ok")
	}
}

func TestGraph_Ratings(t *testing.T) {
	g := newTestGraph(t)

	want := []rating.Rating{
		{Reader: "Cat", Book: "Twilight", Weight: 3},
		{Reader: "Cat", Book: "Kindred", Weight: 5},
		{Reader: "James", Book: "Kindred", Weight: 4},
	}
	if got := g.Ratings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ratings() = %v, want %v", got, want)
	}
}

func TestGraph_HasReader(t *testing.T) {
	g := newTestGraph(t)

	if !g.HasReader("Zoe") {
		t.Error("HasReader(Zoe) = false for a configured reader with no ratings")
	}
	if g.HasReader("Zed") {
		t.Error("HasReader(Zed) = true for an unconfigured reader")
	}
}
