// internal/httpserver/stream.go
//
// Event streams for presentation collaborators.
//   - GET /game/{id}/events: Server-Sent Events, read-only. First frame is a
//     "view" snapshot, then one frame per core event named by its kind.
//   - GET /game/{id}/ws: WebSocket. Same events, plus the client may send
//     commands ({type, letter}) and receives a "result" or "error" for each.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/robalobadob/vaultcrack/internal/game"
)

const keepAlive = 25 * time.Second

// snapshot returns the current view of session id.
func (s *Server) snapshot(ctx context.Context, id string) (view, error) {
	var v view
	err := s.withSession(ctx, id, func(sess *game.Session) error {
		v = viewOf(sess)
		return nil
	})
	return v, err
}

// writeSSE writes one named SSE frame with a JSON payload.
func writeSSE(w http.ResponseWriter, event string, data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b)
	return err
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}

	// Subscribe before the snapshot so nothing falls in between.
	ch, cancel := s.hub.Subscribe(id)
	defer cancel()

	v, err := s.snapshot(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable buffering in nginx/proxies
	w.WriteHeader(http.StatusOK)
	if err := writeSSE(w, "view", v); err != nil {
		return
	}
	flusher.Flush()

	ping := time.NewTicker(keepAlive)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-ch:
			if !ok {
				_ = writeSSE(w, "closed", map[string]string{"gameId": id})
				flusher.Flush()
				return
			}
			if err := writeSSE(w, string(ev.Kind), ev); err != nil {
				log.Debug().Err(err).Str("gameId", id).Msg("sse write")
				return
			}
			flusher.Flush()
		}
	}
}

// wsMessage is every server → client WebSocket frame.
type wsMessage struct {
	Type   string         `json:"type"` // view | event | result | error
	View   *view          `json:"view,omitempty"`
	Event  *game.Event    `json:"event,omitempty"`
	Result *commandResult `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// originPatterns derives the accepted Origin host from the client origin.
func (s *Server) originPatterns() []string {
	u, err := url.Parse(s.opts.ClientOrigin)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ch, cancel := s.hub.Subscribe(id)
	defer cancel()
	v, err := s.snapshot(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.originPatterns()})
	if err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("websocket accept")
		return
	}
	defer c.Close(websocket.StatusInternalError, "unexpected exit")

	ctx, stop := context.WithCancel(r.Context())
	defer stop()

	if err := wsjson.Write(ctx, c, wsMessage{Type: "view", View: &v}); err != nil {
		return
	}

	// Writer: forwards core events until the session or the socket goes away.
	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					_ = c.Close(websocket.StatusGoingAway, "session closed")
					return
				}
				if err := wsjson.Write(ctx, c, wsMessage{Type: "event", Event: &ev}); err != nil {
					return
				}
			}
		}
	}()

	// Reader: one command in, one result or error out.
	for {
		var cmd command
		if err := wsjson.Read(ctx, c, &cmd); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				_ = c.Close(websocket.StatusNormalClosure, "")
				return
			}
			log.Debug().Err(err).Str("gameId", id).Msg("websocket read")
			return
		}
		res, err := s.apply(ctx, id, cmd)
		msg := wsMessage{Type: "result", Result: &res}
		if err != nil {
			_, code := errorStatus(err)
			msg = wsMessage{Type: "error", Error: code}
		}
		if err := wsjson.Write(ctx, c, msg); err != nil {
			return
		}
	}
}
