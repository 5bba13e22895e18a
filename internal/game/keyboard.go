package game

// qwertyRows is the on-screen keyboard layout.
var qwertyRows = [3]string{
	"QWERTYUIOP",
	"ASDFGHJKL",
	"ZXCVBNM",
}

// Key is one on-screen key with its current coloring.
type Key struct {
	Letter string    `json:"letter"`
	Status KeyStatus `json:"status"`
}

// Keyboard tracks the best-seen status of each letter A–Z.
// The zero value is a neutral keyboard.
type Keyboard struct {
	status [26]KeyStatus
}

// Apply records the feedback of a scored guess. A letter only moves up the
// ranking unknown < incorrect < wrong-position < correct, so a Correct key is
// never downgraded and neither is a WrongPosition key by a later miss.
func (k *Keyboard) Apply(guess string, fb []Feedback) {
	for i := 0; i < len(guess) && i < len(fb); i++ {
		c := guess[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		next := KeyStatus(fb[i])
		if next.rank() > k.Status(c).rank() {
			k.status[c-'A'] = next
		}
	}
}

// Status returns the status of an upper-case letter.
func (k *Keyboard) Status(letter byte) KeyStatus {
	if letter < 'A' || letter > 'Z' || k.status[letter-'A'] == "" {
		return KeyUnknown
	}
	return k.status[letter-'A']
}

// Reset returns every key to neutral.
func (k *Keyboard) Reset() { k.status = [26]KeyStatus{} }

// Map returns the status of every letter keyed by its string form.
func (k *Keyboard) Map() map[string]KeyStatus {
	out := make(map[string]KeyStatus, 26)
	for c := byte('A'); c <= 'Z'; c++ {
		out[string(c)] = k.Status(c)
	}
	return out
}

// Rows returns the QWERTY layout with statuses, top row first.
func (k *Keyboard) Rows() [][]Key {
	rows := make([][]Key, 0, len(qwertyRows))
	for _, r := range qwertyRows {
		row := make([]Key, 0, len(r))
		for i := 0; i < len(r); i++ {
			row = append(row, Key{Letter: string(r[i]), Status: k.Status(r[i])})
		}
		rows = append(rows, row)
	}
	return rows
}
