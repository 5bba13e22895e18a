// internal/game/types.go
//
// Core type definitions for the vault game engine.
// Defines:
//   - Feedback: per-letter result of a guess (correct/wrong-position/incorrect).
//   - KeyStatus: best-seen classification of a keyboard letter.
//   - State: coarse session state (awaiting-input/won/lost).
//   - Outcome: what a submit did.
//   - WordSource: where a session draws its target words from.

package game

import "errors"

// Feedback represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct":        letter matches the target at the same position.
//   - "wrong-position": letter is in the target at another, unclaimed position.
//   - "incorrect":      letter is not in any unclaimed target position.
type Feedback string

const (
	FeedbackCorrect       Feedback = "correct"
	FeedbackWrongPosition Feedback = "wrong-position"
	FeedbackIncorrect     Feedback = "incorrect"
)

// KeyStatus is the keyboard coloring for one letter.
type KeyStatus string

const (
	KeyUnknown       KeyStatus = "unknown"
	KeyIncorrect     KeyStatus = "incorrect"
	KeyWrongPosition KeyStatus = "wrong-position"
	KeyCorrect       KeyStatus = "correct"
)

// rank orders statuses so the keyboard only ever upgrades.
func (k KeyStatus) rank() int {
	switch k {
	case KeyIncorrect:
		return 1
	case KeyWrongPosition:
		return 2
	case KeyCorrect:
		return 3
	default:
		return 0
	}
}

// State is the session state. Won and Lost are terminal until Reset.
type State string

const (
	StateAwaitingInput State = "awaiting-input"
	StateWon           State = "won"
	StateLost          State = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Outcome describes what a Submit did.
type Outcome string

const (
	OutcomeLengthMismatch Outcome = "length-mismatch"
	OutcomeRetry          Outcome = "retry"
	OutcomeWon            Outcome = "won"
	OutcomeLost           Outcome = "lost"
)

// SubmitResult is returned by Session.Submit.
// Feedback is nil when Outcome is OutcomeLengthMismatch.
type SubmitResult struct {
	Outcome      Outcome
	Feedback     []Feedback
	AttemptsLeft int
	State        State
}

// ScoredGuess is one entry of the round history.
type ScoredGuess struct {
	Guess    string     `json:"guess"`
	Feedback []Feedback `json:"feedback"`
}

// WordSource selects a target word. Implementations return upper-case words
// from a non-empty vocabulary.
type WordSource interface {
	SelectWord() string
}

// DefaultMaxAttempts is the number of wrong full-length guesses a round allows.
const DefaultMaxAttempts = 2

var (
	// ErrRoundOver is returned by input operations once the round is won or lost.
	ErrRoundOver = errors.New("round over")
	// ErrAwaitingClear is returned when a scored wrong guess is submitted again
	// before the deferred clear ran.
	ErrAwaitingClear = errors.New("guess already scored, awaiting clear")
	// ErrInvalidLetter is returned for anything but a single ASCII letter.
	ErrInvalidLetter = errors.New("invalid letter")
)
