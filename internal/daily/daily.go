// internal/daily/daily.go
//
// Daily vault: every player cracks the same word on a given UTC date.
// The word index is HMAC-SHA256(salt, YYYY-MM-DD) reduced modulo the
// vocabulary size, so it cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/vaultcrack/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Source is a word source that returns the word of the day.
// Reset within the same day yields the same word again.
type Source struct {
	Vocab *words.Vocabulary
	Salt  string
	Now   func() time.Time // nil means time.Now
}

// NewSource builds a Source on the wall clock.
func NewSource(v *words.Vocabulary, salt string) *Source {
	return &Source{Vocab: v, Salt: salt}
}

func (s *Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Date returns today's date key.
func (s *Source) Date() string { return DateKey(s.now()) }

// SelectWord returns today's word.
func (s *Source) SelectWord() string {
	return s.Vocab.At(WordIndex(s.now(), s.Salt, s.Vocab.Len()))
}
