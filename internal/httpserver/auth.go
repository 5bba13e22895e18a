// internal/httpserver/auth.go
//
// Session tokens: an HS256 JWT whose "sid" claim names the one session the
// holder may drive. Tokens are accepted from the Authorization header, the
// "token" query parameter (EventSource and WebSocket cannot set headers), or
// the session cookie.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var errInvalidToken = errors.New("invalid token")

// signToken creates a token for session sid.
func (s *Server) signToken(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(s.opts.TokenSecret)
	return ss, exp, err
}

// verifyToken checks the signature and expiry and returns the session ID.
func (s *Server) verifyToken(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.TokenSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", errInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errInvalidToken
	}
	return sid, nil
}

// requireSession enforces a valid token for the {id} in the path.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := s.tokenFrom(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sid, err := s.verifyToken(tok)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if sid != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// tokenFrom extracts a token from header, query or cookie, in that order.
func (s *Server) tokenFrom(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if q := r.URL.Query().Get("token"); q != "" {
		return q
	}
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// setTokenCookie writes the session cookie with appropriate security attributes.
func (s *Server) setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}
