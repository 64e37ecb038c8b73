package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/bookrec/internal/rating"
)

// BookStat aggregates the ratings a book received.
type BookStat struct {
	Book    string  `json:"book"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
}

// ReaderStat aggregates the ratings a reader gave.
type ReaderStat struct {
	Reader  string  `json:"reader"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Liked   int     `json:"liked"` // Ratings at or above the recommendation threshold
}

// LoadRatings replaces the contents of the ratings table.
func (d *DB) LoadRatings(ratings []rating.Rating) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ratings"); err != nil {
		return 0, fmt.Errorf("clearing ratings table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO ratings (reader, book, weight)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing ratings insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range ratings {
		if _, err := stmt.Exec(r.Reader, r.Book, r.Weight); err != nil {
			return 0, fmt.Errorf("inserting rating %s / %s: %w", r.Reader, r.Book, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing ratings: %w", err)
	}
	return len(ratings), nil
}

// CountRatings returns the total number of ratings.
func (d *DB) CountRatings() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting ratings: %w", err)
	}
	return count, nil
}

// BookStats returns per-book aggregates, most-rated first, then by average.
func (d *DB) BookStats() ([]BookStat, error) {
	rows, err := d.db.Query(`
		SELECT book, COUNT(*), AVG(weight), MIN(weight), MAX(weight)
		FROM ratings
		GROUP BY book
		ORDER BY COUNT(*) DESC, AVG(weight) DESC, book
	`)
	if err != nil {
		return nil, fmt.Errorf("querying book stats: %w", err)
	}
	defer rows.Close()

	var stats []BookStat
	for rows.Next() {
		var s BookStat
		if err := rows.Scan(&s.Book, &s.Count, &s.Average, &s.Min, &s.Max); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ReaderStats returns per-reader aggregates ordered by reader name.
func (d *DB) ReaderStats() ([]ReaderStat, error) {
	rows, err := d.db.Query(`
		SELECT reader, COUNT(*), AVG(weight),
			SUM(CASE WHEN weight >= ? THEN 1 ELSE 0 END)
		FROM ratings
		GROUP BY reader
		ORDER BY reader
	`, rating.RecommendThreshold)
	if err != nil {
		return nil, fmt.Errorf("querying reader stats: %w", err)
	}
	defer rows.Close()

	return scanReaderStats(rows)
}

func scanReaderStats(rows *sql.Rows) ([]ReaderStat, error) {
	var stats []ReaderStat
	for rows.Next() {
		var s ReaderStat
		if err := rows.Scan(&s.Reader, &s.Count, &s.Average, &s.Liked); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
