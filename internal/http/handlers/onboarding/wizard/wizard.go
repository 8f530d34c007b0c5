// Package wizard реализует HTTP-обработчики мастера подключения профессионала.
//
// Клиент открывает область мастера, выбирает тариф на последней странице и
// закрывает область после завершения. Выбор живёт только в памяти сервиса.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
	"github.com/magabrotheeeer/loyalty-platform/internal/onboarding"
	"github.com/magabrotheeeer/loyalty-platform/internal/storage"
)

// Registry хранит области мастера.
type Registry interface {
	Start(owner string) string
	Get(id, owner string) (onboarding.Snapshot, error)
	SelectPlan(id, owner string, p models.Plan) (onboarding.Snapshot, error)
	ClearPlan(id, owner string) (onboarding.Snapshot, error)
	End(id, owner string) error
}

// PlanGetter находит тариф по ID.
type PlanGetter interface {
	Get(ctx context.Context, id string) (*models.Plan, error)
}

// SelectPlanRequest — тело запроса выбора тарифа.
type SelectPlanRequest struct {
	PlanID string `json:"planId" validate:"required,uuid"`
}

// View — состояние области в ответе.
type View struct {
	OnboardingID string       `json:"onboardingId"`
	Step         string       `json:"step" example:"business"`
	SelectedPlan *models.Plan `json:"selectedPlan"`
}

// Handler объединяет операции над областью мастера.
type Handler struct {
	log      *slog.Logger
	registry Registry
	plans    PlanGetter
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, registry Registry, plans PlanGetter) *Handler {
	return &Handler{
		log:      log,
		registry: registry,
		plans:    plans,
		validate: response.NewValidator(),
	}
}

// Start godoc
// @Summary Начать подключение
// @Tags Onboarding
// @Produce  json
// @Security BearerAuth
// @Success 201 {object} View
// @Failure 401 {object} response.ErrorResponse
// @Router /onboarding [post]
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log, owner, ok := h.begin(w, r, "handlers.onboarding.Start")
	if !ok {
		return
	}

	id := h.registry.Start(owner)
	log.Info("onboarding started", slog.String("onboarding_id", id))

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, View{OnboardingID: id, Step: string(onboarding.StepBusiness)})
}

// Get godoc
// @Summary Состояние подключения
// @Tags Onboarding
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID области"
// @Success 200 {object} View
// @Failure 404 {object} response.ErrorResponse
// @Router /onboarding/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log, owner, ok := h.begin(w, r, "handlers.onboarding.Get")
	if !ok {
		return
	}

	snap, err := h.registry.Get(chi.URLParam(r, "id"), owner)
	if err != nil {
		h.scopeError(w, r, log, err)
		return
	}
	render.JSON(w, r, view(snap))
}

// SelectPlan godoc
// @Summary Выбрать тариф
// @Description Заменяет ранее выбранный тариф.
// @Tags Onboarding
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID области"
// @Param request body SelectPlanRequest true "Тариф"
// @Success 200 {object} View
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /onboarding/{id}/plan [put]
func (h *Handler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	log, owner, ok := h.begin(w, r, "handlers.onboarding.SelectPlan")
	if !ok {
		return
	}

	var req SelectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	plan, err := h.plans.Get(r.Context(), req.PlanID)
	if errors.Is(err, storage.ErrPlanNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("plan not found"))
		return
	}
	if err != nil {
		log.Error("failed to load plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load plan"))
		return
	}

	snap, err := h.registry.SelectPlan(chi.URLParam(r, "id"), owner, *plan)
	if err != nil {
		h.scopeError(w, r, log, err)
		return
	}
	log.Info("plan selected", slog.String("onboarding_id", snap.ID), slog.String("plan", plan.Slug))
	render.JSON(w, r, view(snap))
}

// ClearPlan godoc
// @Summary Сбросить выбор тарифа
// @Tags Onboarding
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID области"
// @Success 200 {object} View
// @Failure 404 {object} response.ErrorResponse
// @Router /onboarding/{id}/plan [delete]
func (h *Handler) ClearPlan(w http.ResponseWriter, r *http.Request) {
	log, owner, ok := h.begin(w, r, "handlers.onboarding.ClearPlan")
	if !ok {
		return
	}

	snap, err := h.registry.ClearPlan(chi.URLParam(r, "id"), owner)
	if err != nil {
		h.scopeError(w, r, log, err)
		return
	}
	render.JSON(w, r, view(snap))
}

// End godoc
// @Summary Завершить подключение
// @Tags Onboarding
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID области"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /onboarding/{id} [delete]
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	log, owner, ok := h.begin(w, r, "handlers.onboarding.End")
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.registry.End(id, owner); err != nil {
		h.scopeError(w, r, log, err)
		return
	}
	log.Info("onboarding ended", slog.String("onboarding_id", id))
	render.JSON(w, r, response.OK())
}

func (h *Handler) begin(w http.ResponseWriter, r *http.Request, op string) (*slog.Logger, string, bool) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("profile missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return nil, "", false
	}
	return log, user.ID, true
}

func (h *Handler) scopeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, onboarding.ErrScopeNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	log.Error("onboarding operation failed", sl.Err(err))
	w.WriteHeader(http.StatusInternalServerError)
	render.JSON(w, r, response.Error("internal service error"))
}

func view(s onboarding.Snapshot) View {
	return View{
		OnboardingID: s.ID,
		Step:         string(s.Step),
		SelectedPlan: s.SelectedPlan,
	}
}
