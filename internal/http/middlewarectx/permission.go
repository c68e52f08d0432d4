package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/natiberk/ministry-hub/internal/http/response"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/policy"
)

// UserProvider loads the full account behind an authenticated uid; the
// permission table lives on the account, not in the session token.
type UserProvider interface {
	CurrentUser(ctx context.Context, uid string) (*models.User, error)
}

// CurrentAccount is the context key of the loaded account, set after a
// successful permission check.
const CurrentAccount Key = "account"

// RequirePermission gates a route on the (resource, action) bit of the
// authenticated account's permission table. Must run after
// SessionMiddleware.
func RequirePermission(users UserProvider, resource policy.Resource, action policy.Action, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequirePermission"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			uid, ok := r.Context().Value(UserUID).(string)
			if !ok || uid == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			user, err := users.CurrentUser(r.Context(), uid)
			if err != nil {
				log.Error("failed to load account", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid session"))
				return
			}

			if !policy.Allow(user, resource, action) {
				log.Warn("permission denied",
					slog.String("uid", uid),
					slog.String("resource", string(resource)),
					slog.String("action", string(action)))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("permission denied"))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentAccount, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUserManager gates a route on the role-based account-management
// rule. Must run after SessionMiddleware.
func RequireUserManager(users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireUserManager"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			uid, ok := r.Context().Value(UserUID).(string)
			if !ok || uid == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			user, err := users.CurrentUser(r.Context(), uid)
			if err != nil {
				log.Error("failed to load account", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid session"))
				return
			}

			if !policy.CanManageUsers(user) {
				log.Warn("account management denied", slog.String("uid", uid))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("permission denied"))
				return
			}

			ctx := context.WithValue(r.Context(), CurrentAccount, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountFromContext returns the account stored by the permission
// middleware.
func AccountFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(CurrentAccount).(*models.User)
	return user, ok
}
