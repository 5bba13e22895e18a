package game

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestEvaluateExactMatch(t *testing.T) {
	got := Evaluate("VAULT", "VAULT")
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, f := range got {
		if f != FeedbackCorrect {
			t.Fatalf("pos %d = %q, want correct", i, f)
		}
	}
}

func TestEvaluateDuplicateLetters(t *testing.T) {
	cases := []struct {
		guess, target string
		want          []Feedback
	}{
		// One E in the target: only the first guessed E claims it. The S in the
		// guess finds the target's leading S.
		{"FEES", "SAFE", []Feedback{FeedbackWrongPosition, FeedbackWrongPosition, FeedbackIncorrect, FeedbackWrongPosition}},
		// The exact match consumes the only E before the second pass runs.
		{"EEEE", "SAFE", []Feedback{FeedbackIncorrect, FeedbackIncorrect, FeedbackIncorrect, FeedbackCorrect}},
		{"ALLOT", "VAULT", []Feedback{FeedbackWrongPosition, FeedbackWrongPosition, FeedbackIncorrect, FeedbackIncorrect, FeedbackCorrect}},
		{"ALARM", "ALARM", []Feedback{FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect}},
		{"MAMMA", "ALARM", []Feedback{FeedbackWrongPosition, FeedbackWrongPosition, FeedbackIncorrect, FeedbackIncorrect, FeedbackWrongPosition}},
		{"STEEL", "STEAL", []Feedback{FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackIncorrect, FeedbackCorrect}},
		{"GOLD", "GOLD", []Feedback{FeedbackCorrect, FeedbackCorrect, FeedbackCorrect, FeedbackCorrect}},
		{"DLOG", "GOLD", []Feedback{FeedbackWrongPosition, FeedbackWrongPosition, FeedbackWrongPosition, FeedbackWrongPosition}},
	}
	for _, tc := range cases {
		got := Evaluate(tc.guess, tc.target)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Evaluate(%q, %q) = %v, want %v", tc.guess, tc.target, got, tc.want)
		}
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	if got := Evaluate("SAF", "SAFE"); got != nil {
		t.Fatalf("expected nil for mismatched lengths, got %v", got)
	}
}

// Exercises the counting properties over random words from a small alphabet,
// where repeated letters are common.
func TestEvaluateProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	const alphabet = "AEST"
	word := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[r.IntN(len(alphabet))]
		}
		return string(b)
	}

	for iter := 0; iter < 2000; iter++ {
		n := 4 + r.IntN(2)
		target, guess := word(n), word(n)
		fb := Evaluate(guess, target)
		if len(fb) != n {
			t.Fatalf("len(%q vs %q) = %d, want %d", guess, target, len(fb), n)
		}

		for i := 0; i < n; i++ {
			if (guess[i] == target[i]) != (fb[i] == FeedbackCorrect) {
				t.Fatalf("%q vs %q: pos %d correct mismatch: %v", guess, target, i, fb)
			}
		}

		for c := 0; c < len(alphabet); c++ {
			l := alphabet[c]
			inTarget, marked := 0, 0
			for i := 0; i < n; i++ {
				if target[i] == l {
					inTarget++
				}
				if guess[i] == l && fb[i] != FeedbackIncorrect {
					marked++
				}
			}
			if marked > inTarget {
				t.Fatalf("%q vs %q: letter %c marked %d times, only %d in target", guess, target, l, marked, inTarget)
			}
		}
	}
}

func TestNormalizeLetter(t *testing.T) {
	for in, want := range map[string]byte{"a": 'A', "Z": 'Z', "q": 'Q'} {
		got, err := NormalizeLetter(in)
		if err != nil || got != want {
			t.Errorf("NormalizeLetter(%q) = %c, %v; want %c", in, got, err, want)
		}
	}
	for _, in := range []string{"", "ab", "1", " ", "é", "Enter"} {
		if _, err := NormalizeLetter(in); err != ErrInvalidLetter {
			t.Errorf("NormalizeLetter(%q) err = %v, want ErrInvalidLetter", in, err)
		}
	}
}
