package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mouvement-ensemble/membership-portal/internal/core/domain"
	"github.com/mouvement-ensemble/membership-portal/internal/core/ports"
)

// SessionCookie names the cookie carrying the signed session ID. The
// upstream bearer token itself never leaves the server.
const SessionCookie = "mp_session"

const (
	ctxSessionKey   = "session"
	ctxSessionIDKey = "session_id"
)

// Session resolves the session cookie on every request: parse the signed
// cookie, look the session up in the store, and stash it in the echo
// context. It never blocks a request itself; the guards decide what an
// absent session means for a given route. Evaluation happens per request, so
// a cleared store is observed on the next navigation.
//
// A store outage leaves the request unauthenticated instead of failing it:
// guards still fail closed, while public routes stay up.
func Session(secret string, auth ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, ok := parseSessionCookie(secret, cookie.Value)
			if !ok {
				return next(c)
			}

			session, err := auth.Session(c.Request().Context(), sid)
			if err != nil {
				if !errors.Is(err, domain.ErrNoSession) {
					log.Error().Err(err).Str("path", c.Path()).Msg("session lookup failed, treating as unauthenticated")
				}
				return next(c)
			}

			c.Set(ctxSessionIDKey, sid)
			c.Set(ctxSessionKey, session)
			return next(c)
		}
	}
}

// SessionFromContext returns the session resolved by the Session middleware.
func SessionFromContext(c echo.Context) (domain.Session, bool) {
	session, ok := c.Get(ctxSessionKey).(domain.Session)
	return session, ok
}

// SessionIDFromContext returns the resolved session ID.
func SessionIDFromContext(c echo.Context) (string, bool) {
	sid, ok := c.Get(ctxSessionIDKey).(string)
	return sid, ok && sid != ""
}

// NewSessionCookie mints the signed cookie for a freshly created session.
func NewSessionCookie(secret, sessionID string, ttl time.Duration, secure bool) *http.Cookie {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))

	return &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the cookie on logout.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// parseSessionCookie validates the cookie JWT and extracts the session ID.
// Only HS256 is accepted.
func parseSessionCookie(secret, value string) (string, bool) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	sid, _ := claims["sid"].(string)
	return sid, sid != ""
}
