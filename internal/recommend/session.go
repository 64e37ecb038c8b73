package recommend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/bookrec/internal/library"
	"github.com/matsen/bookrec/internal/rating"
)

// Feedback is the reader's answer to a presented recommendation.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackAccept
	FeedbackReject
)

// String returns the feedback name.
func (f Feedback) String() string {
	switch f {
	case FeedbackAccept:
		return "accept"
	case FeedbackReject:
		return "reject"
	default:
		return "none"
	}
}

// ParseFeedback interprets a line of user input. Only "y" (any case) accepts;
// everything else, including an empty line, rejects.
func ParseFeedback(input string) Feedback {
	input = strings.TrimRight(input, "\r\n")
	if strings.ToLower(input) == "y" {
		return FeedbackAccept
	}
	return FeedbackReject
}

// State is a session's position in the recommendation loop.
type State string

const (
	StateAwaitingRecommendation State = "awaiting_recommendation"
	StatePresenting             State = "presenting"
	StateDone                   State = "done"
)

// Outcome describes how a finished session ended.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeExhausted Outcome = "exhausted"
)

// StepKind distinguishes a prompt from a final result.
type StepKind int

const (
	StepPrompt StepKind = iota
	StepResult
)

// Step is what the session hands back to its driver after each call to Next.
type Step struct {
	Kind   StepKind
	Book   string  // Set for StepPrompt: the book to present
	Result *Result // Set for StepResult
}

// Result summarizes a finished session.
type Result struct {
	Reader    string   `json:"reader"`
	Outcome   Outcome  `json:"outcome"`
	Proposed  []string `json:"proposed"`
	Accepted  []string `json:"accepted"`
	Precision float64  `json:"precision"`
}

// Session errors.
var (
	ErrInvalidFeedback = errors.New("feedback not valid in current state")
	ErrSessionDone     = errors.New("session is done")
)

// Session drives the accept/reject recommendation loop for one reader.
// Rejections are written into the graph the session was created with.
type Session struct {
	graph  *library.Graph
	reader string
	state  State

	current  string
	proposed []string
	accepted []string
	outcome  Outcome
}

// NewSession starts a session for reader. Returns library.ErrUnknownReader if
// the reader is not configured in g.
func NewSession(g *library.Graph, reader string) (*Session, error) {
	if !g.HasReader(reader) {
		return nil, fmt.Errorf("%w: %s", library.ErrUnknownReader, reader)
	}
	return &Session{
		graph:  g,
		reader: reader,
		state:  StateAwaitingRecommendation,
	}, nil
}

// Reader returns the session's reader.
func (s *Session) Reader() string {
	return s.reader
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Next advances the session. Call it with FeedbackNone to get the first step,
// then with FeedbackAccept or FeedbackReject for each presented book.
func (s *Session) Next(fb Feedback) (Step, error) {
	switch s.state {
	case StateAwaitingRecommendation:
		if fb != FeedbackNone {
			return Step{}, fmt.Errorf("%w: %s while awaiting recommendation", ErrInvalidFeedback, fb)
		}
		return s.propose(), nil

	case StatePresenting:
		switch fb {
		case FeedbackAccept:
			s.accepted = append(s.accepted, s.current)
			return s.finish(OutcomeAccepted), nil
		case FeedbackReject:
			demotion := rating.Rating{Reader: s.reader, Book: s.current, Weight: rating.DemotionWeight}
			if err := s.graph.AddRating(demotion); err != nil {
				return Step{}, fmt.Errorf("demoting %q: %w", s.current, err)
			}
			s.state = StateAwaitingRecommendation
			return s.propose(), nil
		default:
			return Step{}, fmt.Errorf("%w: %s while presenting", ErrInvalidFeedback, fb)
		}

	default:
		return Step{}, ErrSessionDone
	}
}

// propose queries the next recommendation and moves to presenting or done.
func (s *Session) propose() Step {
	book, ok := Recommend(s.graph, s.reader)
	if !ok {
		return s.finish(OutcomeExhausted)
	}
	s.current = book
	s.proposed = append(s.proposed, book)
	s.state = StatePresenting
	return Step{Kind: StepPrompt, Book: book}
}

func (s *Session) finish(outcome Outcome) Step {
	s.state = StateDone
	s.outcome = outcome
	s.current = ""
	return Step{Kind: StepResult, Result: s.Result()}
}

// Result returns the session summary. It is only meaningful once the session is done.
func (s *Session) Result() *Result {
	return &Result{
		Reader:    s.reader,
		Outcome:   s.outcome,
		Proposed:  append([]string{}, s.proposed...),
		Accepted:  append([]string{}, s.accepted...),
		Precision: Precision(len(s.accepted), len(s.proposed)),
	}
}

// Precision returns accepted / proposed, or 1.0 when nothing was proposed.
func Precision(accepted, proposed int) float64 {
	if proposed == 0 {
		return 1.0
	}
	return float64(accepted) / float64(proposed)
}
