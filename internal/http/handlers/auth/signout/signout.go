// Package signout реализует HTTP-обработчик явного выхода.
package signout

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

// Service отзывает сессию.
type Service interface {
	SignOut(ctx context.Context, accessToken string) error
}

// Handler обрабатывает выход пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Description Отзывает текущую сессию у провайдера аутентификации.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/signout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := session.Token(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		log.Error("failed to sign out", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign out"))
		return
	}

	log.Info("signed out")
	render.JSON(w, r, response.OK())
}
