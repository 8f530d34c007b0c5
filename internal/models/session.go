package models

// Session выдаётся внешним провайдером аутентификации. Сервис её не хранит,
// а только возвращает клиенту.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         SessionUser `json:"user"`
}

// SessionUser идентичность пользователя в провайдере аутентификации.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
