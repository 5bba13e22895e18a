package words

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	v, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.Len() != 10 {
		t.Fatalf("embedded vocabulary has %d words, want 10", v.Len())
	}
	for _, w := range []string{"VAULT", "gold", "Safe"} {
		if !v.Contains(w) {
			t.Errorf("vocabulary missing %q", w)
		}
	}
}

func TestNewNormalizes(t *testing.T) {
	v, err := New([]string{" heist ", "HEIST", "c4sh", "", "gold"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got := v.Words()
	if len(got) != 2 || got[0] != "HEIST" || got[1] != "GOLD" {
		t.Fatalf("words = %v", got)
	}
	if _, err := New([]string{"123", " "}); !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "words.yaml")
	if err := os.WriteFile(yml, []byte("words:\n  - lock\n  - key\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(txt, []byte("# comment\nsafe\n\nbolt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(yml)
	if err != nil || v.Len() != 2 || v.At(0) != "LOCK" {
		t.Fatalf("yaml load = %v, %v", v, err)
	}
	v, err = Load(txt)
	if err != nil || v.Len() != 2 || v.At(1) != "BOLT" {
		t.Fatalf("text load = %v, %v", v, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRandomSourceSeeded(t *testing.T) {
	v, _ := New([]string{"MONEY", "STEAL", "HEIST", "VAULT"})
	a := NewRandomSource(v, rand.New(rand.NewPCG(1, 2)))
	b := NewRandomSource(v, rand.New(rand.NewPCG(1, 2)))

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		wa, wb := a.SelectWord(), b.SelectWord()
		if wa != wb {
			t.Fatalf("same seed diverged at %d: %s vs %s", i, wa, wb)
		}
		if !v.Contains(wa) {
			t.Fatalf("selected %q outside vocabulary", wa)
		}
		seen[wa]++
	}
	if len(seen) != v.Len() {
		t.Fatalf("200 draws hit only %d of %d words", len(seen), v.Len())
	}
}

func TestRandomSourceDefaultsToCrypto(t *testing.T) {
	v, _ := New([]string{"GOLD"})
	if w := NewRandomSource(v, nil).SelectWord(); w != "GOLD" {
		t.Fatalf("got %q", w)
	}
	if w := Fixed("vault").SelectWord(); w != "VAULT" {
		t.Fatalf("Fixed = %q", w)
	}
}
