// internal/game/session.go
//
// Session is the game-progression state machine for one player.
//
// State transitions:
//   - awaiting-input → won   when a full-length guess equals the word.
//   - awaiting-input → lost  when a wrong guess uses up the last attempt.
//   - any            → awaiting-input on Reset, with a fresh word.
//
// A Session is not safe for concurrent use; the owner serializes calls.

package game

import "strings"

// Session holds one round: the word, the player's input, attempts and keyboard.
type Session struct {
	id          string
	src         WordSource
	word        string
	input       []byte
	maxAttempts int
	attempts    int
	state       State
	spent       bool // input was scored as a wrong guess and awaits ClearInput
	keyboard    Keyboard
	history     []ScoredGuess
	listeners   []Listener
}

// NewSession starts a round with a word from src.
// maxAttempts <= 0 falls back to DefaultMaxAttempts.
func NewSession(id string, src WordSource, maxAttempts int) *Session {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	s := &Session{id: id, src: src, maxAttempts: maxAttempts}
	s.startRound()
	return s
}

// startRound draws a word and resets all per-round state.
func (s *Session) startRound() {
	s.word = strings.ToUpper(s.src.SelectWord())
	s.input = make([]byte, 0, len(s.word))
	s.attempts = s.maxAttempts
	s.state = StateAwaitingInput
	s.spent = false
	s.keyboard.Reset()
	s.history = nil
}

// OnEvent registers a listener for all future events.
func (s *Session) OnEvent(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

func (s *Session) emit(e Event) {
	e.SessionID = s.id
	e.Input = string(s.input)
	e.AttemptsLeft = s.attempts
	e.State = s.state
	for _, l := range s.listeners {
		l(e)
	}
}

// AppendLetter adds an upper-case letter to the input. It reports false,
// without error, when the input is already as long as the word.
func (s *Session) AppendLetter(letter byte) (bool, error) {
	if s.state.Terminal() {
		return false, ErrRoundOver
	}
	if letter < 'A' || letter > 'Z' {
		return false, ErrInvalidLetter
	}
	if len(s.input) >= len(s.word) {
		return false, nil
	}
	s.input = append(s.input, letter)
	s.emit(Event{Kind: EventLetterAppended, Letter: string(letter)})
	return true, nil
}

// ClearInput empties the input and resets the keyboard for this round.
// It is also the deferred step that follows a retry.
func (s *Session) ClearInput() error {
	if s.state.Terminal() {
		return ErrRoundOver
	}
	s.input = s.input[:0]
	s.spent = false
	s.keyboard.Reset()
	s.emit(Event{Kind: EventInputCleared})
	return nil
}

// Submit scores the current input.
//
// A short input is not an error: the result has OutcomeLengthMismatch and
// nothing changes. A full input is scored, the keyboard is upgraded and the
// round is won, lost, or continues with one attempt fewer. After a retry the
// input stays in place until ClearInput runs.
func (s *Session) Submit() (SubmitResult, error) {
	if s.state.Terminal() {
		return s.result(""), ErrRoundOver
	}
	if len(s.input) != len(s.word) {
		s.emit(Event{Kind: EventLengthMismatch})
		return s.result(OutcomeLengthMismatch), nil
	}
	if s.spent {
		return s.result(""), ErrAwaitingClear
	}

	guess := string(s.input)
	fb := Evaluate(guess, s.word)
	s.keyboard.Apply(guess, fb)
	s.history = append(s.history, ScoredGuess{Guess: guess, Feedback: fb})

	var outcome Outcome
	if guess == s.word {
		s.state = StateWon
		outcome = OutcomeWon
	} else {
		s.attempts--
		if s.attempts <= 0 {
			s.attempts = 0
			s.state = StateLost
			outcome = OutcomeLost
		} else {
			s.spent = true
			outcome = OutcomeRetry
		}
	}

	s.emit(Event{Kind: EventGuessScored, Guess: guess, Feedback: fb})
	switch outcome {
	case OutcomeWon:
		s.emit(Event{Kind: EventWon, Guess: guess})
	case OutcomeLost:
		s.emit(Event{Kind: EventRoundLost, Guess: guess})
	case OutcomeRetry:
		s.emit(Event{Kind: EventRetry, Guess: guess})
	}

	res := s.result(outcome)
	res.Feedback = fb
	return res, nil
}

func (s *Session) result(o Outcome) SubmitResult {
	return SubmitResult{Outcome: o, AttemptsLeft: s.attempts, State: s.state}
}

// Reset starts a new round from any state.
func (s *Session) Reset() {
	s.startRound()
	s.emit(Event{Kind: EventReset})
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// WordLength is the number of blank slots to render.
func (s *Session) WordLength() int { return len(s.word) }

// Mask returns the word with every letter hidden.
func (s *Session) Mask() string { return strings.Repeat("?", len(s.word)) }

// Word returns the target word. Only the spoken-word hint should reveal it.
func (s *Session) Word() string { return s.word }

// Input returns the letters typed so far.
func (s *Session) Input() string { return string(s.input) }

func (s *Session) AttemptsLeft() int { return s.attempts }
func (s *Session) MaxAttempts() int  { return s.maxAttempts }
func (s *Session) State() State      { return s.state }

// AwaitingClear reports whether a wrong guess is waiting for its deferred clear.
func (s *Session) AwaitingClear() bool { return s.spent }

// Keyboard returns the status of every letter.
func (s *Session) Keyboard() map[string]KeyStatus { return s.keyboard.Map() }

// KeyboardRows returns the on-screen keyboard with statuses.
func (s *Session) KeyboardRows() [][]Key { return s.keyboard.Rows() }

// History returns the scored guesses of the current round.
func (s *Session) History() []ScoredGuess {
	out := make([]ScoredGuess, len(s.history))
	copy(out, s.history)
	return out
}
