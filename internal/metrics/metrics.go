// Package metrics содержит prometheus-метрики сервиса и HTTP middleware
// для их сбора.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты входа, используемые как значение метки result.
const (
	SignInSuccess   = "success"
	SignInInvalid   = "invalid_credentials"
	SignInForbidden = "forbidden"
	SignInError     = "error"
)

// Metrics — набор коллекторов сервиса.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	signIns       *prometheus.CounterVec
	functionCalls *prometheus.CounterVec
	roleChanges   *prometheus.CounterVec
}

// New регистрирует коллекторы в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loyalty",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "loyalty",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		signIns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loyalty",
			Name:      "signin_total",
			Help:      "Sign-in attempts by result.",
		}, []string{"result"}),
		functionCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loyalty",
			Name:      "function_calls_total",
			Help:      "Backend function invocations by function and outcome.",
		}, []string{"function", "outcome"}),
		roleChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loyalty",
			Name:      "role_changes_total",
			Help:      "Professional role mutations by action.",
		}, []string{"action"}),
	}
}

// SignIn учитывает попытку входа.
func (m *Metrics) SignIn(result string) {
	if m == nil {
		return
	}
	m.signIns.WithLabelValues(result).Inc()
}

// FunctionCall учитывает вызов функции backend-а.
func (m *Metrics) FunctionCall(name string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.functionCalls.WithLabelValues(name, outcome).Inc()
}

// RoleChange учитывает promote/demote.
func (m *Metrics) RoleChange(action string) {
	if m == nil {
		return
	}
	m.roleChanges.WithLabelValues(action).Inc()
}

// Middleware считает запросы и их длительность. Метка route берётся из
// шаблона chi, чтобы ID в пути не раздували кардинальность.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
