// Package list реализует HTTP-обработчик получения каталога тарифов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

// Service описывает интерфейс чтения каталога.
type Service interface {
	List(ctx context.Context) ([]models.Plan, error)
}

// Handler отдаёт список тарифов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог тарифов
// @Description Возвращает тарифы в порядке отображения.
// @Tags Plans
// @Produce  json
// @Success 200 {object} response.Response{data=[]models.Plan}
// @Failure 500 {object} response.ErrorResponse
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plans.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list plans"))
		return
	}

	log.Debug("plans listed", slog.Int("count", len(plans)))
	render.JSON(w, r, response.OKWithData(plans))
}
