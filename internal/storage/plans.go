package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

const planColumns = `id, name, slug, description, price_monthly, features, max_loyalty_programs, display_order`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListPlans возвращает все тарифы в порядке display_order.
func (s *Storage) ListPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM plans
			  ORDER BY display_order, name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPlan возвращает тариф по идентификатору.
func (s *Storage) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + `
			  FROM plans
			  WHERE id = $1`
	p, err := scanPlan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanPlan(row rowScanner) (*models.Plan, error) {
	var (
		p           models.Plan
		description sql.NullString
		features    []byte
		maxPrograms sql.NullInt32
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Slug, &description, &p.PriceMonthly,
		&features, &maxPrograms, &p.DisplayOrder); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Features = []string{}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("decode features: %w", err)
		}
	}
	if maxPrograms.Valid {
		n := int(maxPrograms.Int32)
		p.MaxLoyaltyPrograms = &n
	}
	return &p, nil
}
