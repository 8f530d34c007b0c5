// Package middlewarectx содержит HTTP middleware аутентификации и проверки ролей.
//
// JWTMiddleware проверяет bearer-токен из заголовка Authorization и кладёт
// в контекст идентификатор пользователя провайдера и сам токен.
// ProfileMiddleware по этому идентификатору загружает профиль, а
// RequireProfessional и RequireAdmin пропускают только пользователей с нужной ролью.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// AuthID — ключ для идентификатора пользователя в провайдере аутентификации.
	AuthID Key = "auth_id"
	// Email — ключ для email из токена.
	Email Key = "email"
)

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет auth_id и email в контекст запроса, а сам токен
// сохраняет через session.WithToken, иначе отвечает 401 Unauthorized.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := session.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), AuthID, claims.Subject)
			ctx = context.WithValue(ctx, Email, claims.Email)
			ctx = session.WithToken(ctx, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerPassthrough кладёт bearer-токен в контекст без проверки, если он есть.
// Используется перед шлюзом функций: токен проверяет сам backend.
func BearerPassthrough(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenStr, ok := session.BearerToken(r.Header.Get("Authorization")); ok {
			r = r.WithContext(session.WithToken(r.Context(), tokenStr))
		}
		next.ServeHTTP(w, r)
	})
}

// AuthIDFromContext возвращает идентификатор провайдера, положенный JWTMiddleware.
func AuthIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthID).(string)
	return id, ok && id != ""
}
