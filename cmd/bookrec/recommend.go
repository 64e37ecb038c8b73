package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/recommend"
	"github.com/spf13/cobra"
)

// Messages shown during an interactive session.
const (
	promptName       = "Enter your name to get book recommendations: "
	promptFeedback   = "Did you like this recommendation? (y/n): "
	msgUnknownReader = "User not found. Please check the name."
	msgAccepted      = "Happy reading!"
	msgRejected      = "We'll try another recommendation."
	msgExhausted     = "Sorry, we have no recommendations for you right now."
)

func init() {
	rootCmd.AddCommand(recommendCmd)
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [reader]",
	Short: "Interactively recommend books to a reader",
	Long: `Recommend books to a reader one at a time.

Each book comes from the most similar reader who rated it 4 or higher and is
one you have not rated. Answer 'y' to accept and finish; any other answer
rejects the book, marks it as disliked, and asks for another recommendation.

When the session ends, precision (accepted / proposed) is reported. If nothing
could be proposed, precision is 1.00.

If no reader is given, default_reader from the config is used, and failing
that you are prompted for a name.

Examples:
  bookrec recommend Cat --human
  bookrec recommend            # prompts for a name`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	g := mustLoadGraph(cfg)
	in := bufio.NewReader(os.Stdin)

	reader := cfg.DefaultReader
	if len(args) == 1 {
		reader = args[0]
	}
	if reader == "" {
		fmt.Print(promptName)
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading name: %w", err)
		}
		reader = strings.TrimRight(line, "\r\n")
	}

	session, err := recommend.NewSession(g, reader)
	if err != nil {
		if errors.Is(err, library.ErrUnknownReader) {
			exitWithError(ExitDataError, msgUnknownReader)
		}
		return err
	}

	result, err := runSession(session, in, os.Stdout)
	if err != nil {
		return err
	}

	if humanOutput {
		outputHuman("Precision for %s: %.2f\n", result.Reader, result.Precision)
		return nil
	}
	return outputJSON(result)
}

// runSession drives session to completion, printing each recommendation to out
// and reading one line of feedback per recommendation from in.
// End of input counts as a rejection.
func runSession(session *recommend.Session, in *bufio.Reader, out io.Writer) (*recommend.Result, error) {
	step, err := session.Next(recommend.FeedbackNone)
	for err == nil && step.Kind == recommend.StepPrompt {
		fmt.Fprintf(out, "We recommend you read '%s'\n", step.Book)
		fmt.Fprint(out, promptFeedback)

		line, readErr := in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading feedback: %w", readErr)
		}
		if readErr == io.EOF {
			fmt.Fprintln(out)
		}

		fb := recommend.ParseFeedback(line)
		if fb == recommend.FeedbackAccept {
			fmt.Fprintln(out, msgAccepted)
		} else {
			fmt.Fprintln(out, msgRejected)
		}
		step, err = session.Next(fb)
	}
	if err != nil {
		return nil, err
	}

	if step.Result.Outcome == recommend.OutcomeExhausted {
		fmt.Fprintln(out, msgExhausted)
	}
	return step.Result, nil
}
