package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// UserCounts — агрегаты по состояниям подтверждения аккаунтов.
type UserCounts struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Rejected  int `json:"rejected"`
}

// CountUsersByConfirmation считает пользователей по трём состояниям подтверждения.
func (s *Storage) CountUsersByConfirmation(ctx context.Context) (*UserCounts, error) {
	const op = "storage.CountUsersByConfirmation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*) FILTER (WHERE is_confirmed IS NULL),
			      COUNT(*) FILTER (WHERE is_confirmed = TRUE),
			      COUNT(*) FILTER (WHERE is_confirmed = FALSE)
			  FROM users
			  WHERE role = $1`
	var counts UserCounts
	if err := s.DB.QueryRowContext(ctx, query, models.RoleClient).Scan(
		&counts.Pending, &counts.Confirmed, &counts.Rejected); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &counts, nil
}

// CountCurrentEnrollmentsAll считает актуальные записи по всем пользователям.
// Условие повторяет предикат models.Enrollment.IsCurrent.
func (s *Storage) CountCurrentEnrollmentsAll(ctx context.Context, now time.Time) (int, error) {
	const op = "storage.CountCurrentEnrollmentsAll"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM enrollments
			  WHERE status = $1
			    AND (expires_at IS NULL OR expires_at > $2)`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, models.EnrollmentActive, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
