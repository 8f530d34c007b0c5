// Package role реализует HTTP-обработчики администратора для смены роли
// пользователя: promote делает его профессионалом, demote возвращает в клиенты.
package role

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/loyalty-platform/internal/services/roles"
)

// Action — вид операции над ролью.
type Action string

const (
	Promote Action = "promote"
	Demote  Action = "demote"
)

var messages = map[Action]string{
	Promote: "User promoted to professional",
	Demote:  "User demoted to client",
}

// Request — тело запроса.
type Request struct {
	UserID string `json:"userId" example:"7b0c8f0e-3b9e-4a53-9d0c-0d4a1f5f8e21"`
}

// Service описывает операции над ролью.
type Service interface {
	Promote(ctx context.Context, userID, actorID string) error
	Demote(ctx context.Context, userID, actorID string) error
}

// Recorder учитывает изменения ролей.
type Recorder interface {
	RoleChange(action string)
}

// Handler обрабатывает promote или demote, в зависимости от action.
type Handler struct {
	log     *slog.Logger
	service Service
	metrics Recorder
	action  Action
}

// New создает Handler для указанного действия.
func New(log *slog.Logger, service Service, metrics Recorder, action Action) *Handler {
	return &Handler{
		log:     log,
		service: service,
		metrics: metrics,
		action:  action,
	}
}

// ServeHTTP godoc
// @Summary Смена роли пользователя
// @Description promote выставляет is_professional = true, demote сбрасывает флаг. Только для администраторов.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param action path string true "promote или demote"
// @Param request body Request true "Идентификатор пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/users/{action} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.role"

	log := h.log.With(
		slog.String("op", op),
		slog.String("action", string(h.action)),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	var actorID string
	if actor, ok := middlewarectx.UserFromContext(r.Context()); ok {
		actorID = actor.ID
	}

	var err error
	switch h.action {
	case Promote:
		err = h.service.Promote(r.Context(), req.UserID, actorID)
	case Demote:
		err = h.service.Demote(r.Context(), req.UserID, actorID)
	default:
		err = errors.New("unknown action")
	}

	switch {
	case err == nil:
	case errors.Is(err, services.ErrMissingParameter):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(services.ErrMissingParameter.Error()))
		return
	default:
		log.Error("role change failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	h.metrics.RoleChange(string(h.action))
	log.Info("role changed", slog.String("user_id", req.UserID), slog.String("actor_id", actorID))
	render.JSON(w, r, response.OKWithMessage(messages[h.action]))
}
