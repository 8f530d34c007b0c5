// Package session переносит токен сессии пользователя через context запроса.
//
// Сама сессия хранится на клиенте (её выдаёт провайдер аутентификации),
// сервис лишь читает предъявленный bearer-токен и передаёт его дальше,
// например в шлюз edge-функций.
package session

import (
	"context"
	"strings"
)

type tokenKey struct{}

// WithToken возвращает копию ctx с токеном сессии.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Token возвращает токен сессии из ctx. false, если токена нет.
func Token(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// BearerToken извлекает токен из значения заголовка Authorization.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
