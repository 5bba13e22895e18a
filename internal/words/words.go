// internal/words/words.go
//
// Vocabulary management for the vault game.
//
// Responsibilities:
//   - Load the vocabulary from a configured file or fall back to the embedded default.
//   - Normalize words to upper-case and drop anything that is not purely alphabetic.
//   - Supply word sources: RandomSource (uniform, injectable RNG) and Fixed.
//
// Load behavior:
//   1. path == ""            → embedded assets/vault_words.yaml.
//   2. path ends .yaml/.yml  → YAML document of the shape `words: [...]`.
//   3. anything else         → one word per line, `#` starts a comment.

package words

import (
	"bufio"
	"bytes"
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/robalobadob/vaultcrack/assets"
)

// ErrEmptyVocabulary is returned when no usable word survives normalization.
var ErrEmptyVocabulary = errors.New("words: vocabulary is empty")

// Vocabulary is an immutable, non-empty list of upper-case words.
type Vocabulary struct {
	words []string
	set   map[string]struct{}
}

// New normalizes list into a Vocabulary. Duplicates are kept once, in first-seen order.
func New(list []string) (*Vocabulary, error) {
	v := &Vocabulary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = strings.ToUpper(strings.TrimSpace(w))
		if !isAlpha(w) {
			continue
		}
		if _, dup := v.set[w]; dup {
			continue
		}
		v.set[w] = struct{}{}
		v.words = append(v.words, w)
	}
	if len(v.words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return v, nil
}

// Load reads the vocabulary from path, or the embedded default when path is empty.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		list, err := assets.VaultWords()
		if err != nil {
			return nil, fmt.Errorf("embedded vocabulary: %w", err)
		}
		return New(list)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		list, err = assets.ParseWordFile(raw)
	default:
		list, err = readLines(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(list)
}

// readLines splits a plain word list, skipping blanks and # comments.
func readLines(raw []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is non-empty and all upper-case ASCII letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Len returns the number of words.
func (v *Vocabulary) Len() int { return len(v.words) }

// At returns the i-th word.
func (v *Vocabulary) At(i int) string { return v.words[i] }

// Contains reports whether w (any case) is in the vocabulary.
func (v *Vocabulary) Contains(w string) bool {
	_, ok := v.set[strings.ToUpper(w)]
	return ok
}

// Words returns a copy of the word list.
func (v *Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Rand is the random source a RandomSource draws from.
// *math/rand/v2.Rand satisfies it, so tests can pass a seeded generator.
type Rand interface {
	IntN(n int) int
}

// cryptoRand draws from crypto/rand.
type cryptoRand struct{}

func (cryptoRand) IntN(n int) int {
	nBig, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// RandomSource selects words uniformly at random, independent of earlier picks.
type RandomSource struct {
	Vocab *Vocabulary
	Rand  Rand // nil means crypto/rand
}

// NewRandomSource builds a RandomSource; r may be nil.
func NewRandomSource(v *Vocabulary, r Rand) *RandomSource {
	return &RandomSource{Vocab: v, Rand: r}
}

// SelectWord returns a random word from the vocabulary.
func (s *RandomSource) SelectWord() string {
	r := s.Rand
	if r == nil {
		r = cryptoRand{}
	}
	return s.Vocab.At(r.IntN(s.Vocab.Len()))
}

// Fixed is a source that always returns the same word.
type Fixed string

// SelectWord returns the word upper-cased.
func (f Fixed) SelectWord() string { return strings.ToUpper(string(f)) }
