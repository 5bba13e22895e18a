package game

// EventKind names a state change presentation collaborators can react to.
type EventKind string

const (
	EventLetterAppended EventKind = "letter-appended"
	EventInputCleared   EventKind = "input-cleared"
	EventLengthMismatch EventKind = "length-mismatch"
	EventGuessScored    EventKind = "guess-scored"
	EventRetry          EventKind = "retry"
	EventRoundLost      EventKind = "round-lost"
	EventWon            EventKind = "won"
	EventReset          EventKind = "reset"
)

// Event is raised synchronously by a Session after the state change it names.
type Event struct {
	Kind         EventKind  `json:"kind"`
	SessionID    string     `json:"sessionId"`
	Letter       string     `json:"letter,omitempty"`
	Input        string     `json:"input"`
	Guess        string     `json:"guess,omitempty"`
	Feedback     []Feedback `json:"feedback,omitempty"`
	AttemptsLeft int        `json:"attemptsLeft"`
	State        State      `json:"state"`
}

// Listener receives session events. Listeners run on the caller's goroutine
// while the operation that raised the event is still in progress, so they
// must not call back into the Session.
type Listener func(Event)
