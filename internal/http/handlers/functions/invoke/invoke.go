// Package invoke проксирует вызовы edge-функций backend-а через шлюз.
//
// Имя функции берётся из пути, HTTP-метод запроса становится методом вызова,
// тело передаётся как есть. Публичные функции вызываются без сессии.
package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loyalty-platform/internal/backend/functions"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
)

const maxBody = 1 << 20

// Gateway вызывает функцию backend-а.
type Gateway interface {
	Call(ctx context.Context, name string, payload any, opts ...functions.Option) (json.RawMessage, error)
}

// Recorder учитывает вызовы функций.
type Recorder interface {
	FunctionCall(name string, err error)
}

// Handler обрабатывает POST, PATCH и DELETE на /functions/{name}.
type Handler struct {
	log      *slog.Logger
	gateway  Gateway
	metrics  Recorder
	isPublic func(name string) bool
}

// New создает Handler. isPublic определяет функции, доступные без сессии.
func New(log *slog.Logger, gateway Gateway, metrics Recorder, isPublic func(name string) bool) *Handler {
	if isPublic == nil {
		isPublic = func(string) bool { return false }
	}
	return &Handler{
		log:      log,
		gateway:  gateway,
		metrics:  metrics,
		isPublic: isPublic,
	}
}

// ServeHTTP godoc
// @Summary Вызов функции backend-а
// @Description Передаёт тело запроса в функцию backend-а с токеном текущей сессии.
// @Tags Functions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param name path string true "Имя функции"
// @Param payload body object false "Произвольный JSON"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /functions/{name} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.functions.invoke"

	name := chi.URLParam(r, "name")
	log := h.log.With(
		slog.String("op", op),
		slog.String("function", name),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if !functions.ValidName(name) {
		log.Warn("invalid function name")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid function name"))
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	var payload any
	if len(raw) > 0 {
		if !json.Valid(raw) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		payload = json.RawMessage(raw)
	}

	opts := []functions.Option{functions.WithMethod(r.Method)}
	if h.isPublic(name) {
		opts = append(opts, functions.WithoutAuth())
	}

	data, err := h.gateway.Call(r.Context(), name, payload, opts...)
	h.metrics.FunctionCall(name, err)
	switch {
	case err == nil:
	case errors.Is(err, functions.ErrUnauthenticated):
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	default:
		log.Error("function call failed", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	if data == nil {
		render.JSON(w, r, response.OK())
		return
	}
	render.JSON(w, r, response.OKWithData(data))
}
