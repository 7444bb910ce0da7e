package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/golang-walletauth/auth"
)

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 22/12/2025
 * Time: 09:41
 */

// maxBodySize caps request bodies; every request is a small JSON object.
const maxBodySize = 1 << 14

// Server exposes the wallet sign-in flow over HTTP.
type Server struct {
	auth   *auth.Authenticator
	router chi.Router
}

// New creates a Server. Requests are logged with logger.
func New(a *auth.Authenticator, logger zerolog.Logger) *Server {
	srv := &Server{auth: a}

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("http request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/auth", func(r chi.Router) {
		r.Post("/challenge", srv.handleChallenge)
		r.Post("/verify", srv.handleVerify)
		r.Get("/session", srv.handleGetSession)
		r.Delete("/session", srv.handleDeleteSession)
	})

	srv.router = r
	return srv
}

// ServeHTTP implements http.Handler.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	srv.router.ServeHTTP(w, r)
}

// ChallengeRequest is the body of POST /auth/challenge.
type ChallengeRequest struct {
	Address string `json:"address"`
}

// ChallengeResponse is returned by POST /auth/challenge.
type ChallengeResponse struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerifyRequest is the body of POST /auth/verify.
type VerifyRequest struct {
	ChallengeID string `json:"challenge_id"`
	Signature   string `json:"signature"`
}

// SessionResponse is returned by POST /auth/verify and GET /auth/session.
type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	Address   string    `json:"address"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (srv *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	var req ChallengeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := srv.auth.Challenge(r.Context(), req.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChallengeResponse{
		ID:        c.ID,
		Address:   c.Address,
		Nonce:     c.Nonce,
		Message:   c.Message,
		IssuedAt:  c.IssuedAt,
		ExpiresAt: c.ExpiresAt,
	})
}

func (srv *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := srv.auth.Verify(r.Context(), req.ChallengeID, req.Signature)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Token:     s.Token,
		Address:   s.Address,
		IssuedAt:  s.IssuedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

func (srv *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, r, auth.ErrSessionNotFound)
		return
	}

	s, err := srv.auth.Session(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		Address:   s.Address,
		IssuedAt:  s.IssuedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

func (srv *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, r, auth.ErrSessionNotFound)
		return
	}

	if err := srv.auth.SignOut(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// statusFor maps auth errors to HTTP status codes: bad input is the client's
// fault (400), anything that fails to prove identity is 401.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidAddress),
		errors.Is(err, auth.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrChallengeNotFound),
		errors.Is(err, auth.ErrChallengeExpired),
		errors.Is(err, auth.ErrSignatureMismatch),
		errors.Is(err, auth.ErrSessionNotFound),
		errors.Is(err, auth.ErrSessionExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
