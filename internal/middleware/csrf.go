// AngelaMos | 2026
// csrf.go

package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/liftingtracker/backend/internal/core"
)

const (
	csrfHeader     = "X-CSRF-Token"
	sessionCookie  = "lt_sid"
	csrfKeyPrefix  = "csrf:"
	sessionTTL     = 24 * time.Hour
	sessionIDBytes = 24
)

// CSRFGuard issues and verifies per-session anti-forgery tokens. The
// session is identified by an opaque cookie; the expected token lives in
// redis so any instance can verify it.
type CSRFGuard struct {
	redis *redis.Client
}

func NewCSRFGuard(redisClient *redis.Client) *CSRFGuard {
	return &CSRFGuard{redis: redisClient}
}

// Issue ensures the request has a session cookie and returns a fresh
// CSRF token bound to it. Callers include the token in their response
// payload; clients echo it back in the X-CSRF-Token header.
func (g *CSRFGuard) Issue(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
) (string, error) {
	sid, err := g.sessionID(r)
	if err != nil {
		sid, err = core.GenerateSecureToken(sessionIDBytes)
		if err != nil {
			return "", err
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	token, err := core.GenerateSecureToken(32)
	if err != nil {
		return "", err
	}

	if err := g.redis.Set(ctx, csrfKeyPrefix+sid, token, sessionTTL).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// SessionID returns the opaque session identifier from the request
// cookie, or empty when no session has been established.
func (g *CSRFGuard) SessionID(r *http.Request) string {
	sid, err := g.sessionID(r)
	if err != nil {
		return ""
	}
	return sid
}

// Require rejects mutating requests whose CSRF token does not match the
// session's stored token. Verification runs before any handler touches
// the request body.
func (g *CSRFGuard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		sid, err := g.sessionID(r)
		if err != nil {
			core.JSONError(w, core.CSRFError())
			return
		}

		presented := r.Header.Get(csrfHeader)
		if presented == "" {
			core.JSONError(w, core.CSRFError())
			return
		}

		expected, err := g.redis.Get(r.Context(), csrfKeyPrefix+sid).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				core.InternalServerError(w, err)
				return
			}
			core.JSONError(w, core.CSRFError())
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			core.JSONError(w, core.CSRFError())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *CSRFGuard) sessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return "", http.ErrNoCookie
	}
	return cookie.Value, nil
}
