// internal/game/engine.go
//
// Guess evaluation for the vault game.
// Responsibilities:
//   - Score a guess against the target using the classic two-pass algorithm.
//   - Filter raw key input down to a single upper-case letter.

package game

// Evaluate compares guess against target and returns one Feedback per position.
//
// Pass 1:
//   - Exact matches are Correct; both the guess and target letter are consumed.
//
// Pass 2:
//   - For each remaining guess letter, the first unconsumed occurrence in the
//     target (scanning left to right) is claimed and the letter marked
//     WrongPosition; with no occurrence left it is Incorrect.
//
// A target letter satisfies at most one guess position, so repeated letters
// are never double-counted. Guess and target must have equal length; on a
// mismatch Evaluate returns nil.
func Evaluate(guess, target string) []Feedback {
	n := len(guess)
	if n != len(target) {
		return nil
	}
	res := make([]Feedback, n)
	remaining := []byte(target)

	// First pass: exact matches.
	for i := 0; i < n; i++ {
		if guess[i] == remaining[i] {
			res[i] = FeedbackCorrect
			remaining[i] = 0
		}
	}

	// Second pass: claim the first unconsumed occurrence, if any.
	for i := 0; i < n; i++ {
		if res[i] == FeedbackCorrect {
			continue
		}
		res[i] = FeedbackIncorrect
		for j := 0; j < n; j++ {
			if remaining[j] != 0 && remaining[j] == guess[i] {
				res[i] = FeedbackWrongPosition
				remaining[j] = 0
				break
			}
		}
	}
	return res
}

// NormalizeLetter accepts a single ASCII letter in either case and returns it
// upper-cased. Anything else yields ErrInvalidLetter.
func NormalizeLetter(s string) (byte, error) {
	if len(s) != 1 {
		return 0, ErrInvalidLetter
	}
	c := s[0]
	switch {
	case c >= 'A' && c <= 'Z':
		return c, nil
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', nil
	}
	return 0, ErrInvalidLetter
}
