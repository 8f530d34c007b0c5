// Package gotrue реализует клиент hosted-аутентификации backend-а (/auth/v1).
//
// Клиент умеет только то, что нужно сервису: вход по email и паролю
// и отзыв выданной сессии.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

// ErrInvalidCredentials — провайдер отклонил пару email/пароль.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// Client обращается к эндпоинтам /auth/v1 backend-а.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewClient создаёт клиент. httpClient может быть nil.
func NewClient(baseURL, anonKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: httpClient,
	}
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInWithPassword получает новую сессию по email и паролю.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "gotrue.SignInWithPassword"

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", passwordGrant{
		Email:    email,
		Password: password,
	}, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%s: %w: %s", op, ErrInvalidCredentials, readError(resp.Body))
	default:
		return nil, fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, readError(resp.Body))
	}

	var s models.Session
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.AccessToken == "" || s.User.ID == "" {
		return nil, fmt.Errorf("%s: incomplete session in response", op)
	}
	return &s, nil
}

// SignOut отзывает сессию, которой принадлежит accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	const op = "gotrue.SignOut"

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, accessToken)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, readError(resp.Body))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, bearer string) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req, nil
}

// readError достаёт описание ошибки из ответа провайдера. Провайдер
// использует разные поля в зависимости от версии.
func readError(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return "empty response"
	}
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return strings.TrimSpace(string(b))
	}
	for _, s := range []string{payload.ErrorDescription, payload.Msg, payload.Message, payload.Error} {
		if s != "" {
			return s
		}
	}
	return strings.TrimSpace(string(b))
}
