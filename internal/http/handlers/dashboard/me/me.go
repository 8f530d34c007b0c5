// Package me отдаёт профиль текущего пользователя для кабинета профессионала.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/response"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

// Profile — данные кабинета.
type Profile struct {
	User    *models.User `json:"user"`
	IsAdmin bool         `json:"isAdmin"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Dashboard
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Profile}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		h.log.Error("profile missing in context", slog.String("op", "handlers.dashboard.me"))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}
	render.JSON(w, r, response.OKWithData(Profile{User: user, IsAdmin: user.IsAdmin}))
}
