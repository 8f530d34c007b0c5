// Package models содержит доменные модели сервиса лояльности:
// пользователя, тариф, сессию внешнего провайдера аутентификации.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет учётную запись пользователя в таблице users backend-а.
type User struct {
	ID             string `json:"id"`             // Внутренний идентификатор пользователя
	FirstName      string `json:"firstName"`      // Имя
	LastName       string `json:"lastName"`       // Фамилия
	Email          string `json:"email"`          // Электронная почта
	IsProfessional bool   `json:"isProfessional"` // Доступ к кабинету профессионала
	IsAdmin        bool   `json:"isAdmin"`        // Повышенные привилегии
	AuthID         string `json:"authId"`         // Идентификатор во внешнем провайдере аутентификации
}

// CanAccessProfessionalArea сообщает, может ли пользователь удерживать сессию в кабинете.
func (u *User) CanAccessProfessionalArea() bool {
	return u.IsProfessional || u.IsAdmin
}
