// Package signin реализует HTTP-обработчик входа в кабинет профессионала.
//
// Обработчик декодирует email и пароль, валидирует их и делегирует вход
// сервису авторизации. Ошибки сервиса переводятся в коды 401, 403 и 500.
package signin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/metrics"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
	services "github.com/magabrotheeeer/loyalty-platform/internal/services/auth"
)

// Request — учетные данные пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse — тело успешного ответа.
type SignInResponse struct {
	Success bool            `json:"success" example:"true"`
	User    *models.User    `json:"user"`
	IsAdmin bool            `json:"isAdmin"`
	Session *models.Session `json:"session"`
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	SignIn(ctx context.Context, email, password string) (*services.SignInResult, error)
}

// Recorder учитывает результаты входа.
type Recorder interface {
	SignIn(result string)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	metrics  Recorder
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, metrics Recorder) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		metrics:  metrics,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Вход в кабинет профессионала
// @Description Аутентифицирует пользователя по email и паролю. Пускает только professional или admin.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} SignInResponse "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Нет доступа к кабинету"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/signin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signin"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidCredentials):
		h.metrics.SignIn(metrics.SignInInvalid)
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid login credentials"))
		return
	case errors.Is(err, services.ErrForbidden):
		h.metrics.SignIn(metrics.SignInForbidden)
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("access restricted to professional accounts"))
		return
	case errors.Is(err, services.ErrProfileLookupFailed):
		h.metrics.SignIn(metrics.SignInError)
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load user profile"))
		return
	default:
		log.Error("sign-in failed", sl.Err(err))
		h.metrics.SignIn(metrics.SignInError)
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	h.metrics.SignIn(metrics.SignInSuccess)
	log.Info("sign-in success", slog.String("user_id", res.User.ID))
	render.JSON(w, r, SignInResponse{
		Success: true,
		User:    res.User,
		IsAdmin: res.IsAdmin,
		Session: res.Session,
	})
}
