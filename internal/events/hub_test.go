package events

import (
	"testing"

	"github.com/robalobadob/vaultcrack/internal/game"
	"github.com/robalobadob/vaultcrack/internal/words"
)

func TestSessionEventsReachSubscribers(t *testing.T) {
	h := NewHub()
	s := game.NewSession("s1", words.Fixed("GOLD"), 2)
	s.OnEvent(h.Listener())

	ch, cancel := h.Subscribe("s1")
	defer cancel()
	other, cancelOther := h.Subscribe("s2")
	defer cancelOther()

	if _, err := s.AppendLetter('G'); err != nil {
		t.Fatalf("AppendLetter: %v", err)
	}
	e := <-ch
	if e.Kind != game.EventLetterAppended || e.Letter != "G" || e.Input != "G" || e.SessionID != "s1" {
		t.Fatalf("event = %+v", e)
	}
	select {
	case e := <-other:
		t.Fatalf("other session received %+v", e)
	default:
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("s1")
	defer cancel()
	for i := 0; i < BufferSize+10; i++ {
		h.Publish(game.Event{Kind: game.EventLengthMismatch, SessionID: "s1"})
	}
	if len(ch) != BufferSize {
		t.Fatalf("buffered %d, want %d", len(ch), BufferSize)
	}
}

func TestCloseEndsStreams(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("s1")
	h.Close("s1")
	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after Close")
	}
	cancel() // must not double-close
	if n := h.Subscribers("s1"); n != 0 {
		t.Fatalf("subscribers = %d", n)
	}

	_, cancel2 := h.Subscribe("s1")
	if n := h.Subscribers("s1"); n != 1 {
		t.Fatalf("subscribers = %d", n)
	}
	cancel2()
	cancel2()
	if n := h.Subscribers("s1"); n != 0 {
		t.Fatalf("subscribers after cancel = %d", n)
	}
}
