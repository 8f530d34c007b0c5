// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Ошибка всегда отдаётся как
// {"error": "..."}, успех как {"success": true, ...}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру успешного JSON‑ответа.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки. Используется и в аннотациях @Failure.
type ErrorResponse struct {
	Error string `json:"error" example:"userId is required"`
}

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Success: true}
}

// OKWithMessage возвращает успешный Response с сообщением.
func OKWithMessage(msg string) Response {
	return Response{Success: true, Message: msg}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{Success: true, Data: data}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Имена полей берутся из json-тегов, если валидатор настроен через NewValidator.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("%s is required", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("%s must be a valid email", err.Field()))
		case "uuid", "uuid4":
			errsMsgs = append(errsMsgs, fmt.Sprintf("%s must be a valid uuid", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("%s is not valid", err.Field()))
		}
	}
	return ErrorResponse{Error: strings.Join(errsMsgs, ", ")}
}
