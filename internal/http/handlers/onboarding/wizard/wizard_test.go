package wizard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/loyalty-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
	"github.com/magabrotheeeer/loyalty-platform/internal/onboarding"
	"github.com/magabrotheeeer/loyalty-platform/internal/storage"
)

const (
	planPro      = "0b6f2a1e-6a2c-4b8e-9a43-3f1d8c2e7a01"
	planBusiness = "7c1e4d5a-2f3b-4c6d-8e9f-0a1b2c3d4e5f"
	planUnknown  = "d3a9b7c2-1e4f-4a5b-8c6d-9e0f1a2b3c4d"
)

type planCatalog map[string]models.Plan

func (c planCatalog) Get(_ context.Context, id string) (*models.Plan, error) {
	p, ok := c[id]
	if !ok {
		return nil, storage.ErrPlanNotFound
	}
	return &p, nil
}

func newTestRouter() http.Handler {
	five := 5
	catalog := planCatalog{
		planPro:      {ID: planPro, Name: "Pro", Slug: "pro", Features: []string{"a"}, MaxLoyaltyPrograms: &five},
		planBusiness: {ID: planBusiness, Name: "Business", Slug: "business"},
	}
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), onboarding.NewRegistry(time.Hour), catalog)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if id := req.Header.Get("X-Test-User"); id != "" {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), &models.User{ID: id, IsProfessional: true}))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/onboarding", h.Start)
	r.Get("/onboarding/{id}", h.Get)
	r.Put("/onboarding/{id}/plan", h.SelectPlan)
	r.Delete("/onboarding/{id}/plan", h.ClearPlan)
	r.Delete("/onboarding/{id}", h.End)
	return r
}

func do(t *testing.T, h http.Handler, method, path, user, body string) (*httptest.ResponseRecorder, View) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var v View
	if w.Code == http.StatusOK || w.Code == http.StatusCreated {
		_ = json.Unmarshal(w.Body.Bytes(), &v)
	}
	return w, v
}

func TestWizard_Flow(t *testing.T) {
	h := newTestRouter()

	w, v := do(t, h, http.MethodPost, "/onboarding", "u1", "")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, v.OnboardingID)
	assert.Equal(t, "business", v.Step)
	id := v.OnboardingID

	w, v = do(t, h, http.MethodGet, "/onboarding/"+id, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, v.SelectedPlan)

	w, v = do(t, h, http.MethodPut, "/onboarding/"+id+"/plan", "u1", `{"planId":"`+planPro+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "plan", v.Step)
	require.NotNil(t, v.SelectedPlan)
	assert.Equal(t, "pro", v.SelectedPlan.Slug)

	w, v = do(t, h, http.MethodPut, "/onboarding/"+id+"/plan", "u1", `{"planId":"`+planBusiness+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, v.SelectedPlan)
	assert.Equal(t, "business", v.SelectedPlan.Slug)
	assert.Nil(t, v.SelectedPlan.MaxLoyaltyPrograms, "selection is replaced, not merged")
	assert.Empty(t, v.SelectedPlan.Features)

	w, v = do(t, h, http.MethodDelete, "/onboarding/"+id+"/plan", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, v.SelectedPlan)
	assert.Equal(t, "business", v.Step)

	w, _ = do(t, h, http.MethodDelete, "/onboarding/"+id, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w, _ = do(t, h, http.MethodGet, "/onboarding/"+id, "u1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizard_Errors(t *testing.T) {
	h := newTestRouter()
	_, v := do(t, h, http.MethodPost, "/onboarding", "u1", "")
	id := v.OnboardingID

	tests := []struct {
		name       string
		method     string
		path       string
		user       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "no profile", method: http.MethodPost, path: "/onboarding", wantStatus: http.StatusUnauthorized, wantError: "user identification missing"},
		{name: "unknown scope", method: http.MethodGet, path: "/onboarding/nope", user: "u1", wantStatus: http.StatusNotFound, wantError: "onboarding scope not found"},
		{name: "other owner", method: http.MethodGet, path: "/onboarding/" + id, user: "u2", wantStatus: http.StatusNotFound, wantError: "onboarding scope not found"},
		{name: "missing plan id", method: http.MethodPut, path: "/onboarding/" + id + "/plan", user: "u1", body: `{}`, wantStatus: http.StatusBadRequest, wantError: "planId is required"},
		{name: "bad body", method: http.MethodPut, path: "/onboarding/" + id + "/plan", user: "u1", body: `{`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "malformed plan id", method: http.MethodPut, path: "/onboarding/" + id + "/plan", user: "u1", body: `{"planId":"pro"}`, wantStatus: http.StatusBadRequest, wantError: "planId must be a valid uuid"},
		{name: "unknown plan", method: http.MethodPut, path: "/onboarding/" + id + "/plan", user: "u1", body: `{"planId":"` + planUnknown + `"}`, wantStatus: http.StatusNotFound, wantError: "plan not found"},
		{name: "select in foreign scope", method: http.MethodPut, path: "/onboarding/" + id + "/plan", user: "u2", body: `{"planId":"` + planPro + `"}`, wantStatus: http.StatusNotFound, wantError: "onboarding scope not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, h, tt.method, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, w.Body.String())
		})
	}
}
