// Package functions реализует шлюз вызова edge-функций backend-а.
//
// Шлюз прикладывает bearer-токен текущей сессии, сериализует payload в JSON,
// выполняет ровно одну попытку вызова и приводит ответ к единому виду:
// данные из поля data либо ошибка ErrCallFailed с сообщением backend-а.
package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/magabrotheeeer/loyalty-platform/internal/session"
)

var (
	// ErrUnauthenticated — функция требует сессию, а токена нет.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrCallFailed — вызов завершился ошибкой на любом этапе.
	ErrCallFailed = errors.New("function call failed")
	// ErrInvalidName — имя функции не является одним сегментом пути.
	ErrInvalidName = fmt.Errorf("%w: invalid function name", ErrCallFailed)
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidName сообщает, можно ли подставить name в путь /functions/v1/<name>.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Options параметры одного вызова.
type Options struct {
	RequireAuth bool
	Method      string
}

// Option изменяет параметры вызова.
type Option func(*Options)

// WithoutAuth разрешает вызов без сессии.
func WithoutAuth() Option {
	return func(o *Options) {
		o.RequireAuth = false
	}
}

// WithMethod задаёт HTTP-метод: POST, PATCH или DELETE.
func WithMethod(method string) Option {
	return func(o *Options) {
		o.Method = strings.ToUpper(method)
	}
}

// Gateway вызывает функции по адресу <baseURL>/functions/v1/<name>.
type Gateway struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// New создаёт шлюз. httpClient может быть nil, тогда используется клиент
// без таймаута.
func New(baseURL, anonKey string, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: httpClient,
	}
}

// Call вызывает функцию name. Токен сессии берётся из ctx (session.WithToken).
func (g *Gateway) Call(ctx context.Context, name string, payload any, opts ...Option) (json.RawMessage, error) {
	o := Options{RequireAuth: true, Method: http.MethodPost}
	for _, opt := range opts {
		opt(&o)
	}

	switch o.Method {
	case http.MethodPost, http.MethodPatch, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", ErrCallFailed, o.Method)
	}
	if !ValidName(name) {
		return nil, fmt.Errorf("%w %q", ErrInvalidName, name)
	}

	token, hasToken := session.Token(ctx)
	if o.RequireAuth && !hasToken {
		return nil, ErrUnauthenticated
	}

	req, err := g.newRequest(ctx, o.Method, name, payload, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCallFailed, err.Error())
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCallFailed, err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCallFailed, err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("function %s failed with status %d", name, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrCallFailed, msg)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	return unwrap(body)
}

func (g *Gateway) newRequest(ctx context.Context, method, name string, payload any, token string) (*http.Request, error) {
	url := g.baseURL + "/functions/v1/" + name
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.anonKey != "" {
		req.Header.Set("apikey", g.anonKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// envelope — необязательная обёртка ответа функции.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error json.RawMessage `json:"error"`
}

// unwrap разбирает успешный ответ. Тело с полем error считается ошибкой,
// даже если статус 2xx.
func unwrap(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON in response", ErrCallFailed)
	}

	trimmed := bytes.TrimSpace(body)
	if trimmed[0] != '{' {
		return json.RawMessage(trimmed), nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCallFailed, err.Error())
	}
	if present(env.Error) {
		msg := messageOf(env.Error)
		if msg == "" {
			msg = "function returned an error"
		}
		return nil, fmt.Errorf("%w: %s", ErrCallFailed, msg)
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return json.RawMessage(trimmed), nil
}

// errorMessage достаёт текст ошибки из тела неуспешного ответа.
func errorMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Msg     string          `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if present(payload.Error) {
		if msg := messageOf(payload.Error); msg != "" {
			return msg
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Msg
}

// present считает ошибкой любое значение, кроме пустых: null, false, "", 0.
func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	switch string(trimmed) {
	case "null", "false", `""`, "0":
		return false
	}
	return true
}

// messageOf принимает error как строку или объект с полем message.
func messageOf(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return strings.TrimSpace(string(raw))
}
