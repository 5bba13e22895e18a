package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vaultcrack/internal/game"
)

// view is everything a presentation layer needs to draw a session.
// The word itself is never part of it.
type view struct {
	GameID        string                    `json:"gameId"`
	Length        int                       `json:"length"`
	Mask          string                    `json:"mask"`
	Input         string                    `json:"input"`
	AttemptsLeft  int                       `json:"attemptsLeft"`
	MaxAttempts   int                       `json:"maxAttempts"`
	State         game.State                `json:"state"`
	AwaitingClear bool                      `json:"awaitingClear"`
	Keyboard      map[string]game.KeyStatus `json:"keyboard"`
	Rows          [][]game.Key              `json:"rows"`
	History       []game.ScoredGuess        `json:"history"`
}

func viewOf(s *game.Session) view {
	return view{
		GameID:        s.ID(),
		Length:        s.WordLength(),
		Mask:          s.Mask(),
		Input:         s.Input(),
		AttemptsLeft:  s.AttemptsLeft(),
		MaxAttempts:   s.MaxAttempts(),
		State:         s.State(),
		AwaitingClear: s.AwaitingClear(),
		Keyboard:      s.Keyboard(),
		Rows:          s.KeyboardRows(),
		History:       s.History(),
	}
}

// command is one player input, shared by the REST and WebSocket transports.
type command struct {
	Type   string `json:"type"` // letter | clear | submit | reset
	Letter string `json:"letter,omitempty"`
}

// commandResult is the reply to a command.
type commandResult struct {
	Accepted *bool           `json:"accepted,omitempty"`
	Outcome  game.Outcome    `json:"outcome,omitempty"`
	Feedback []game.Feedback `json:"feedback,omitempty"`
	View     view            `json:"view"`
}

// apply runs cmd against session id. Non-letters are filtered here, before
// the core sees them.
func (s *Server) apply(ctx context.Context, id string, cmd command) (commandResult, error) {
	var letter byte
	if cmd.Type == "letter" {
		l, err := game.NormalizeLetter(cmd.Letter)
		if err != nil {
			return commandResult{}, err
		}
		letter = l
	}

	var res commandResult
	err := s.withSession(ctx, id, func(sess *game.Session) error {
		switch cmd.Type {
		case "letter":
			ok, err := sess.AppendLetter(letter)
			if err != nil {
				return err
			}
			res.Accepted = &ok
		case "clear":
			if err := sess.ClearInput(); err != nil {
				return err
			}
		case "submit":
			sr, err := sess.Submit()
			if err != nil {
				return err
			}
			res.Outcome, res.Feedback = sr.Outcome, sr.Feedback
		case "reset":
			sess.Reset()
		default:
			return errUnknownCommand
		}
		res.View = viewOf(sess)
		return nil
	})
	return res, err
}

// ------------------------------ handlers -----------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Mode      string    `json:"mode"`
	View      view      `json:"view"`
}

// handleNewGame creates a session and issues its token (body and cookie).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means defaults
	if req.Mode == "" {
		req.Mode = "random"
	}

	sess, err := s.newSession(r.Context(), req.Mode)
	if err != nil {
		writeErr(w, err)
		return
	}
	tok, exp, err := s.signToken(sess.ID())
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setTokenCookie(w, tok, exp)

	// Fresh session: nobody else holds its token yet, so no lock is needed.
	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID: sess.ID(), Token: tok, ExpiresAt: exp, Mode: req.Mode, View: viewOf(sess),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var v view
	err := s.withSession(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		v = viewOf(sess)
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// letterReq is the payload for POST /game/{id}/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.runCommand(w, r, command{Type: "letter", Letter: req.Letter})
}

// handleCommand serves the body-less commands (clear, submit, reset).
func (s *Server) handleCommand(typ string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.runCommand(w, r, command{Type: typ})
	}
}

func (s *Server) runCommand(w http.ResponseWriter, r *http.Request, cmd command) {
	res, err := s.apply(r.Context(), chi.URLParam(r, "id"), cmd)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// handleSpeak reveals the word for the client's text-to-speech button.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var word string
	err := s.withSession(r.Context(), chi.URLParam(r, "id"), func(sess *game.Session) error {
		word = sess.Word()
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"word": word})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.dropSession(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	log.Info().Str("gameId", id).Msg("session deleted")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
