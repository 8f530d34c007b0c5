// Package services содержит бизнес-логику каталога тарифов с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/models"
	"github.com/magabrotheeeer/loyalty-platform/internal/storage"
)

const cacheKeyAll = "plans:all"

// PlanRepository определяет методы чтения тарифов из хранилища.
type PlanRepository interface {
	// ListPlans возвращает все тарифы в порядке отображения.
	ListPlans(ctx context.Context) ([]models.Plan, error)
	// GetPlan возвращает тариф по ID.
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// PlanService отдаёт каталог тарифов. Тарифы не меняются после загрузки,
// поэтому кешируются целиком.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, ttl time.Duration, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// List возвращает все тарифы, используя кеш. Ошибки кеша не прерывают запрос.
func (s *PlanService) List(ctx context.Context) ([]models.Plan, error) {
	const op = "services.plans.List"

	var cached []models.Plan
	found, err := s.cache.Get(ctx, cacheKeyAll, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", slog.String("op", op), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cacheKeyAll, plans, s.ttl); err != nil {
		s.log.Warn("failed to cache plans", slog.String("op", op), sl.Err(err))
	}
	return plans, nil
}

// Get возвращает тариф по ID из каталога. Хранилище опрашивается отдельно
// только если каталог получить не удалось.
func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	const op = "services.plans.Get"

	plans, err := s.List(ctx)
	if err == nil {
		for i := range plans {
			if plans[i].ID == id {
				p := plans[i]
				return &p, nil
			}
		}
		return nil, fmt.Errorf("%s: %w", op, storage.ErrPlanNotFound)
	}
	s.log.Warn("plan catalogue unavailable, falling back to storage", slog.String("op", op), sl.Err(err))

	p, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}
