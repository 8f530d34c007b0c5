package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
	"github.com/magabrotheeeer/loyalty-platform/internal/storage"
)

type userKey struct{}

// ProfileMiddleware загружает профиль пользователя, прошедшего JWTMiddleware.
func ProfileMiddleware(log *slog.Logger, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.ProfileMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authID, ok := AuthIDFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := users.GetUserByAuthID(r.Context(), authID)
			if errors.Is(err, storage.ErrUserNotFound) {
				log.Warn("profile not found", slog.String("auth_id", authID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("profile not found"))
				return
			}
			if err != nil {
				log.Error("failed to load profile", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает профиль, загруженный ProfileMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey{}).(*models.User)
	return u, ok && u != nil
}

// WithUser кладёт профиль в контекст. Нужен обработчикам в тестах.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// RequireProfessional пропускает пользователей с доступом к кабинету профессионала.
func RequireProfessional(log *slog.Logger) func(http.Handler) http.Handler {
	return requireRole(log, "professional", (*models.User).CanAccessProfessionalArea)
}

// RequireAdmin пропускает только администраторов.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return requireRole(log, "admin", func(u *models.User) bool { return u.IsAdmin })
}

func requireRole(log *slog.Logger, role string, allowed func(*models.User) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("profile missing in context", slog.String("role", role))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			if !allowed(user) {
				log.Warn("access denied",
					slog.String("role", role),
					slog.String("user_id", user.ID),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
