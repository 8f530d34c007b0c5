package invoke

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/loyalty-platform/internal/backend/functions"
	"github.com/magabrotheeeer/loyalty-platform/internal/http/middlewarectx"
)

type recorderMock struct {
	calls []string
}

func (r *recorderMock) FunctionCall(name string, err error) {
	r.calls = append(r.calls, fmt.Sprintf("%s:%t", name, err == nil))
}

// newRouter собирает обработчик поверх настоящего шлюза и фейкового backend-а.
func newRouter(t *testing.T, status int, body string) (http.Handler, *recorderMock, *int32, *string) {
	t.Helper()
	var calls int32
	var lastBody string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		b, _ := io.ReadAll(r.Body)
		lastBody = r.Method + " " + r.URL.Path + " " + string(b)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(backend.Close)

	gw := functions.New(backend.URL, "anon", backend.Client())
	rec := &recorderMock{}
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), gw, rec, func(name string) bool {
		return name == "contact-form"
	})

	r := chi.NewRouter()
	r.Use(middlewarectx.BearerPassthrough)
	r.Post("/functions/{name}", h.ServeHTTP)
	r.Patch("/functions/{name}", h.ServeHTTP)
	r.Delete("/functions/{name}", h.ServeHTTP)
	return r, rec, &calls, &lastBody
}

func TestInvokeHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		token       string
		body        string
		backendCode int
		backendBody string
		wantStatus  int
		wantBody    string
		wantCalls   int32
		wantForward string
	}{
		{
			name:        "authenticated call",
			method:      http.MethodPost,
			path:        "/functions/create-business",
			token:       "tok",
			body:        `{"name":"Cafe"}`,
			backendCode: http.StatusOK,
			backendBody: `{"data":{"id":"b1"}}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"success":true,"data":{"id":"b1"}}`,
			wantCalls:   1,
			wantForward: `POST /functions/v1/create-business {"name":"Cafe"}`,
		},
		{
			name:        "no session",
			method:      http.MethodPost,
			path:        "/functions/create-business",
			body:        `{}`,
			backendCode: http.StatusOK,
			backendBody: `{}`,
			wantStatus:  http.StatusUnauthorized,
			wantBody:    `{"error":"not authenticated"}`,
		},
		{
			name:        "public function without session",
			method:      http.MethodPost,
			path:        "/functions/contact-form",
			body:        `{"email":"a@b.c"}`,
			backendCode: http.StatusOK,
			backendBody: `{"data":"sent"}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"success":true,"data":"sent"}`,
			wantCalls:   1,
		},
		{
			name:        "patch is forwarded",
			method:      http.MethodPatch,
			path:        "/functions/update-program",
			token:       "tok",
			body:        `{"id":"p1"}`,
			backendCode: http.StatusOK,
			backendBody: `{"data":{"ok":true}}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"success":true,"data":{"ok":true}}`,
			wantCalls:   1,
			wantForward: `PATCH /functions/v1/update-program {"id":"p1"}`,
		},
		{
			name:        "delete without content",
			method:      http.MethodDelete,
			path:        "/functions/delete-program",
			token:       "tok",
			backendCode: http.StatusNoContent,
			wantStatus:  http.StatusOK,
			wantBody:    `{"success":true}`,
			wantCalls:   1,
		},
		{
			name:        "backend failure",
			method:      http.MethodPost,
			path:        "/functions/create-business",
			token:       "tok",
			body:        `{}`,
			backendCode: http.StatusBadRequest,
			backendBody: `{"error":"name is required"}`,
			wantStatus:  http.StatusBadGateway,
			wantCalls:   1,
		},
		{
			name:       "invalid json",
			method:     http.MethodPost,
			path:       "/functions/create-business",
			token:      "tok",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request body"}`,
		},
		{
			name:        "encoded slashes in name",
			method:      http.MethodPost,
			path:        "/functions/..%2F..%2Fauth%2Fv1%2Fadmin%2Fusers",
			token:       "tok",
			body:        `{}`,
			backendCode: http.StatusOK,
			backendBody: `{"data":"leaked"}`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"invalid function name"}`,
		},
		{
			name:        "encoded query in public name",
			method:      http.MethodPost,
			path:        "/functions/contact-form%3Fx=1",
			body:        `{}`,
			backendCode: http.StatusOK,
			backendBody: `{"data":"leaked"}`,
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"error":"invalid function name"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, rec, calls, forwarded := newRouter(t, tt.backendCode, tt.backendBody)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Contains(t, body["error"], "name is required")
			}
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
			if tt.wantForward != "" {
				assert.Equal(t, tt.wantForward, strings.TrimSpace(*forwarded))
			}
			if tt.wantStatus != http.StatusBadRequest {
				assert.Len(t, rec.calls, 1)
			} else {
				assert.Empty(t, rec.calls)
			}
		})
	}
}
