package daily

import (
	"testing"
	"time"

	"github.com/robalobadob/vaultcrack/internal/words"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	ts := time.Date(2026, 3, 2, 3, 0, 0, 0, loc) // 2026-03-01 18:00 UTC
	if got := DateKey(ts); got != "2026-03-01" {
		t.Fatalf("DateKey = %s", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	a := WordIndex(day, "salt", 10)
	b := WordIndex(day.Add(10*time.Hour), "salt", 10)
	if a != b {
		t.Fatalf("same day gave %d and %d", a, b)
	}
	if a < 0 || a >= 10 {
		t.Fatalf("index %d out of range", a)
	}
	if WordIndex(day, "salt", 0) != 0 {
		t.Fatalf("empty vocabulary must map to 0")
	}

	// Different salts should not all agree across a month of dates.
	differ := false
	for d := 0; d < 30 && !differ; d++ {
		ts := day.AddDate(0, 0, d)
		differ = WordIndex(ts, "a", 10) != WordIndex(ts, "b", 10)
	}
	if !differ {
		t.Fatalf("salt has no effect on word index")
	}
}

func TestSourceSelectsWordOfTheDay(t *testing.T) {
	v, err := words.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	src := &Source{Vocab: v, Salt: "test", Now: func() time.Time { return now }}

	want := v.At(WordIndex(now, "test", v.Len()))
	for i := 0; i < 3; i++ {
		if got := src.SelectWord(); got != want {
			t.Fatalf("draw %d = %s, want %s", i, got, want)
		}
	}
	if src.Date() != "2026-10-15" {
		t.Fatalf("Date = %s", src.Date())
	}
}
