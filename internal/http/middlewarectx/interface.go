package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/loyalty-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

// TokenParser проверяет access-токен провайдера аутентификации.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.Claims, error)
}

// UserLoader загружает профиль пользователя по идентификатору провайдера.
type UserLoader interface {
	GetUserByAuthID(ctx context.Context, authID string) (*models.User, error)
}
