package signin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/loyalty-platform/internal/metrics"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
	services "github.com/magabrotheeeer/loyalty-platform/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) SignIn(ctx context.Context, email, password string) (*services.SignInResult, error) {
	args := m.Called(ctx, email, password)
	res, _ := args.Get(0).(*services.SignInResult)
	return res, args.Error(1)
}

type recorderMock struct {
	results []string
}

func (r *recorderMock) SignIn(result string) {
	r.results = append(r.results, result)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSignInHandler_ServeHTTP(t *testing.T) {
	okResult := &services.SignInResult{
		User:    &models.User{ID: "u1", Email: "pro@example.com", IsProfessional: true, IsAdmin: true},
		IsAdmin: true,
		Session: &models.Session{AccessToken: "at", RefreshToken: "rt", User: models.SessionUser{ID: "auth-1"}},
	}

	tests := []struct {
		name        string
		body        string
		mockRes     *services.SignInResult
		mockErr     error
		expectCall  bool
		wantStatus  int
		wantError   string
		wantMetric  string
		wantIsAdmin bool
	}{
		{
			name:        "success",
			body:        `{"email":"pro@example.com","password":"secret123"}`,
			mockRes:     okResult,
			expectCall:  true,
			wantStatus:  http.StatusOK,
			wantMetric:  metrics.SignInSuccess,
			wantIsAdmin: true,
		},
		{
			name:       "invalid json",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "missing password",
			body:       `{"email":"pro@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "password is required",
		},
		{
			name:       "bad email",
			body:       `{"email":"nope","password":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "email must be a valid email",
		},
		{
			name:       "invalid credentials",
			body:       `{"email":"pro@example.com","password":"wrong"}`,
			mockErr:    services.ErrInvalidCredentials,
			expectCall: true,
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid login credentials",
			wantMetric: metrics.SignInInvalid,
		},
		{
			name:       "forbidden",
			body:       `{"email":"pro@example.com","password":"secret123"}`,
			mockErr:    services.ErrForbidden,
			expectCall: true,
			wantStatus: http.StatusForbidden,
			wantError:  "access restricted to professional accounts",
			wantMetric: metrics.SignInForbidden,
		},
		{
			name:       "profile lookup failed",
			body:       `{"email":"pro@example.com","password":"secret123"}`,
			mockErr:    services.ErrProfileLookupFailed,
			expectCall: true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "failed to load user profile",
			wantMetric: metrics.SignInError,
		},
		{
			name:       "identity provider unavailable",
			body:       `{"email":"pro@example.com","password":"secret123"}`,
			mockErr:    fmt.Errorf("%w: unexpected status 503", services.ErrIdentityUnavailable),
			expectCall: true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal service error",
			wantMetric: metrics.SignInError,
		},
		{
			name:       "unexpected error",
			body:       `{"email":"pro@example.com","password":"secret123"}`,
			mockErr:    errors.New("boom"),
			expectCall: true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal service error",
			wantMetric: metrics.SignInError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			rec := &recorderMock{}
			if tt.expectCall {
				var req Request
				require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
				svc.On("SignIn", mock.Anything, req.Email, req.Password).Return(tt.mockRes, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), svc, rec)

			r := httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewReader([]byte(tt.body)))
			r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "reqid123"))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				var body SignInResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.True(t, body.Success)
				assert.Equal(t, tt.wantIsAdmin, body.IsAdmin)
				assert.Equal(t, "u1", body.User.ID)
				assert.Equal(t, "at", body.Session.AccessToken)
			}
			if tt.wantMetric != "" {
				assert.Equal(t, []string{tt.wantMetric}, rec.results)
			} else {
				assert.Empty(t, rec.results)
			}
			svc.AssertExpectations(t)
		})
	}
}
