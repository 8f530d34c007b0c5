package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/loyalty-platform/internal/models"
)

const userColumns = `id, first_name, last_name, email, is_professional, is_admin, auth_id`

// GetUserByAuthID возвращает пользователя по идентификатору во внешнем провайдере аутентификации.
func (s *Storage) GetUserByAuthID(ctx context.Context, authID string) (*models.User, error) {
	const op = "storage.GetUserByAuthID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE auth_id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, authID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по внутреннему идентификатору.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SetProfessional выставляет флаг is_professional. Возвращает число затронутых строк;
// повторная запись того же значения не считается ошибкой.
func (s *Storage) SetProfessional(ctx context.Context, id string, value bool) (int64, error) {
	const op = "storage.SetProfessional"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_professional = $1
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, value, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u                   models.User
		firstName, lastName sql.NullString
	)
	if err := row.Scan(&u.ID, &firstName, &lastName, &u.Email,
		&u.IsProfessional, &u.IsAdmin, &u.AuthID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.FirstName = firstName.String
	u.LastName = lastName.String
	return &u, nil
}
