// Package jwt реализует проверку access-токенов, выпущенных провайдером
// аутентификации backend-а, и выпуск таких же токенов для локальной отладки.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и проверки access-токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя провайдера аутентификации.
	GenerateToken(authID, email string) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на HMAC-секрете проекта backend-а.
type MakerImpl struct {
	secretKey string        // JWT secret проекта.
	tokenTTL  time.Duration // Время жизни выпускаемых токенов.
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
