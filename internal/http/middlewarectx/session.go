// Package middlewarectx contains the HTTP middleware of the admin surface:
// session-cookie authentication, permission checks and rate limiting.
//
// SessionMiddleware reads the signed token from the session cookie and, when
// valid, stores the account's uid, email and role in the request context
// under typed keys.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/jwt"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
)

// Key is the type of request-context keys set by this package.
type Key string

const (
	// UserUID is the context key of the authenticated account's uid.
	UserUID Key = "uid"
	// UserEmail is the context key of the authenticated account's e-mail.
	UserEmail Key = "email"
	// UserRole is the context key of the authenticated account's role.
	UserRole Key = "role"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// SessionMiddleware authenticates requests by the session cookie. Requests
// without a valid token get 401 and never reach the handler.
func SessionMiddleware(jwtMaker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				log.Error("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			claims, err := jwtMaker.ParseToken(cookie.Value)
			if err != nil {
				log.Error("invalid or expired session token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.UID)
			ctx = context.WithValue(ctx, UserEmail, claims.Email)
			ctx = context.WithValue(ctx, UserRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
