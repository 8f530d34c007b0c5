// Package services содержит операции администратора над ролями пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
)

var (
	// ErrMissingParameter — не передан идентификатор пользователя.
	ErrMissingParameter = errors.New("userId is required")
	// ErrMutationFailed — запись флага завершилась ошибкой.
	ErrMutationFailed = errors.New("role mutation failed")
)

// RoleRepository записывает флаг is_professional.
type RoleRepository interface {
	SetProfessional(ctx context.Context, userID string, value bool) (int64, error)
}

// EventPublisher публикует доменные события.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// RoleChangedEvent публикуется после каждой успешной смены роли.
type RoleChangedEvent struct {
	UserID         string    `json:"userId"`
	IsProfessional bool      `json:"isProfessional"`
	ChangedBy      string    `json:"changedBy,omitempty"`
	ChangedAt      time.Time `json:"changedAt"`
}

// RoleService повышает пользователя до professional и понижает обратно до client.
type RoleService struct {
	repo       RoleRepository
	events     EventPublisher
	routingKey string
	log        *slog.Logger
}

// NewRoleService создает RoleService. events может быть nil — тогда события не публикуются.
func NewRoleService(repo RoleRepository, events EventPublisher, routingKey string, log *slog.Logger) *RoleService {
	return &RoleService{
		repo:       repo,
		events:     events,
		routingKey: routingKey,
		log:        log,
	}
}

// Promote выставляет is_professional = true. Повторный вызов успешен.
func (s *RoleService) Promote(ctx context.Context, userID, actorID string) error {
	return s.setProfessional(ctx, userID, actorID, true)
}

// Demote выставляет is_professional = false. Повторный вызов успешен.
func (s *RoleService) Demote(ctx context.Context, userID, actorID string) error {
	return s.setProfessional(ctx, userID, actorID, false)
}

func (s *RoleService) setProfessional(ctx context.Context, userID, actorID string, value bool) error {
	const op = "services.roles.setProfessional"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID), slog.Bool("professional", value))

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrMissingParameter
	}

	n, err := s.repo.SetProfessional(ctx, userID, value)
	if err != nil {
		log.Error("failed to update role", sl.Err(err))
		return fmt.Errorf("%w: %s", ErrMutationFailed, err.Error())
	}
	if n == 0 {
		log.Warn("role update matched no rows")
		return nil
	}
	log.Info("role updated", slog.String("actor_id", actorID))

	if s.events == nil {
		return nil
	}
	event := RoleChangedEvent{
		UserID:         userID,
		IsProfessional: value,
		ChangedBy:      actorID,
		ChangedAt:      time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, s.routingKey, event); err != nil {
		log.Warn("failed to publish role change", sl.Err(err))
	}
	return nil
}
