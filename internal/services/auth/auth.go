// Package services содержит логику входа в кабинет профессионала.
//
// Вход — строгая последовательность: аутентификация у внешнего провайдера,
// загрузка профиля, проверка ролей. Если профиль не найден или у пользователя
// нет ни роли professional, ни admin, только что выданная сессия отзывается.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/loyalty-platform/internal/backend/gotrue"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

var (
	// ErrInvalidCredentials — провайдер отклонил email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProfileLookupFailed — сессия получена, но профиль пользователя не загружен.
	ErrProfileLookupFailed = errors.New("profile lookup failed")
	// ErrForbidden — у пользователя нет доступа к кабинету профессионала.
	ErrForbidden = errors.New("access restricted to professional accounts")
	// ErrIdentityUnavailable — провайдер не ответил или ответил не по протоколу.
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
)

// IdentityProvider — внешний провайдер аутентификации.
type IdentityProvider interface {
	// SignInWithPassword выдаёт новую сессию. Отказ в доступе по email/паролю
	// оборачивает gotrue.ErrInvalidCredentials.
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	// SignOut отзывает сессию.
	SignOut(ctx context.Context, accessToken string) error
}

// UserRepository загружает профиль пользователя по идентификатору провайдера.
type UserRepository interface {
	GetUserByAuthID(ctx context.Context, authID string) (*models.User, error)
}

// SignInResult — результат успешного входа.
type SignInResult struct {
	User    *models.User
	IsAdmin bool
	Session *models.Session
}

// AuthService реализует вход с проверкой ролей.
type AuthService struct {
	identity IdentityProvider
	users    UserRepository
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(identity IdentityProvider, users UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{
		identity: identity,
		users:    users,
		log:      log,
	}
}

// SignIn аутентифицирует пользователя и проверяет, что он professional или admin.
// Частичного успеха нет: при любой ошибке после выдачи сессии она отзывается.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	const op = "services.auth.SignIn"
	log := s.log.With(slog.String("op", op))

	sess, err := s.identity.SignInWithPassword(ctx, email, password)
	if errors.Is(err, gotrue.ErrInvalidCredentials) {
		log.Info("authentication rejected", sl.Err(err))
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, err.Error())
	}
	if err != nil {
		log.Error("identity provider failed", sl.Err(err))
		return nil, fmt.Errorf("%w: %s", ErrIdentityUnavailable, err.Error())
	}

	user, err := s.users.GetUserByAuthID(ctx, sess.User.ID)
	if err != nil {
		log.Error("failed to load profile", slog.String("auth_id", sess.User.ID), sl.Err(err))
		s.revoke(ctx, log, sess)
		return nil, fmt.Errorf("%w: %s", ErrProfileLookupFailed, err.Error())
	}

	if !user.CanAccessProfessionalArea() {
		log.Warn("sign-in denied for non-professional account", slog.String("user_id", user.ID))
		s.revoke(ctx, log, sess)
		return nil, ErrForbidden
	}

	log.Info("sign-in succeeded", slog.String("user_id", user.ID), slog.Bool("is_admin", user.IsAdmin))
	return &SignInResult{
		User:    user,
		IsAdmin: user.IsAdmin,
		Session: sess,
	}, nil
}

// SignOut отзывает сессию по access-токену.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	const op = "services.auth.SignOut"
	if err := s.identity.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// revoke отзывает сессию, выданную в рамках текущего входа. Ошибка отзыва
// только логируется: вызывающий всё равно получает исходную причину отказа.
// Отзыв выполняется даже если ctx запроса уже отменён.
func (s *AuthService) revoke(ctx context.Context, log *slog.Logger, sess *models.Session) {
	if err := s.identity.SignOut(context.WithoutCancel(ctx), sess.AccessToken); err != nil {
		log.Error("failed to revoke session", sl.Err(err))
	}
}
