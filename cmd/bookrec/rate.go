package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/matsen/bookrec/internal/config"
	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/rating"
	"github.com/matsen/bookrec/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rateCmd)
}

var rateCmd = &cobra.Command{
	Use:   "rate <reader> <book> <weight>",
	Short: "Record a rating in the ratings file",
	Long: `Record a rating (1-5) in the JSONL ratings file given by --ratings or
ratings_path in the config. The file is layered over the dataset on every
load, so the rating affects later recommendations.

A new (reader, book) pair is appended; an existing pair is rewritten in place.

Example:
  bookrec rate Cat Dune 5 --ratings ~/bookrec-ratings.jsonl`,
	Args: cobra.ExactArgs(3),
	RunE: runRate,
}

// RateResponse is the response for the rate command.
type RateResponse struct {
	Rating  rating.Rating `json:"rating"`
	Updated bool          `json:"updated"`
	Path    string        `json:"path"`
}

func runRate(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	path := firstNonEmpty(ratingsFlag, cfg.RatingsPath)
	if path == "" {
		exitWithError(ExitConfigError, "no ratings file: pass --ratings or set ratings_path in %s", config.ConfigPath())
	}
	path = config.ExpandTilde(path)

	weight, err := strconv.Atoi(args[2])
	if err != nil {
		exitWithError(ExitError, "invalid weight %q: must be an integer from %d to %d", args[2], rating.MinWeight, rating.MaxWeight)
	}
	r := rating.Rating{Reader: args[0], Book: args[1], Weight: weight}

	g := mustLoadGraph(cfg)
	if err := g.AddRating(r); err != nil {
		if errors.Is(err, library.ErrUnknownReader) {
			exitWithError(ExitDataError, msgUnknownReader)
		}
		exitWithError(ExitError, "%v", err)
	}

	updated, err := recordRating(path, r)
	if err != nil {
		return err
	}

	if humanOutput {
		verb := "Added"
		if updated {
			verb = "Updated"
		}
		outputHuman("%s rating %s / %s = %d in %s\n", verb, r.Reader, r.Book, r.Weight, path)
		return nil
	}
	return outputJSON(RateResponse{Rating: r, Updated: updated, Path: path})
}

// recordRating writes r to the JSONL file at path, appending a new pair and
// rewriting the file when the pair already exists. Reports whether it updated.
func recordRating(path string, r rating.Rating) (bool, error) {
	existing, err := storage.ReadAllRatings(path)
	if err != nil {
		return false, fmt.Errorf("reading ratings: %w", err)
	}

	if _, found := storage.FindRatingInSlice(existing, r.Key()); !found {
		if err := storage.AppendRating(path, r); err != nil {
			return false, err
		}
		return false, nil
	}

	updated, _ := storage.UpsertRatingInSlice(existing, r)
	return true, storage.WriteAllRatings(path, updated)
}
