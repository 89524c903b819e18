package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// CreateEnrollment вставляет новую запись на услугу и возвращает её ID.
func (s *Storage) CreateEnrollment(ctx context.Context, enrollment models.Enrollment) (int, error) {
	const op = "storage.CreateEnrollment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollments (user_uid, service_id, status, enrolled_at,
			      expires_at, hours_remaining)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		enrollment.UserUID, enrollment.ServiceID, enrollment.Status, enrollment.EnrolledAt,
		enrollment.ExpiresAt, enrollment.HoursRemaining).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

func scanEnrollment(row interface{ Scan(...any) error }) (*models.Enrollment, error) {
	var e models.Enrollment
	var expiresAt sql.NullTime
	var hoursRemaining sql.NullInt64
	if err := row.Scan(&e.ID, &e.UserUID, &e.ServiceID, &e.Status, &e.EnrolledAt,
		&expiresAt, &hoursRemaining); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		e.ExpiresAt = &expiresAt.Time
	}
	if hoursRemaining.Valid {
		hours := int(hoursRemaining.Int64)
		e.HoursRemaining = &hours
	}
	return &e, nil
}

const enrollmentColumns = `id, user_uid, service_id, status, enrolled_at, expires_at, hours_remaining`

// ReadEnrollment возвращает запись по её ID.
func (s *Storage) ReadEnrollment(ctx context.Context, id int) (*models.Enrollment, error) {
	const op = "storage.ReadEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	e, err := scanEnrollment(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ListEnrollments возвращает записи пользователя с пагинацией.
func (s *Storage) ListEnrollments(ctx context.Context, userUID string, limit, offset int) ([]*models.Enrollment, error) {
	const op = "storage.ListEnrollments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentColumns + `
			  FROM enrollments
			  WHERE user_uid = $1
			  ORDER BY enrolled_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllEnrollments возвращает записи всех пользователей с пагинацией.
func (s *Storage) ListAllEnrollments(ctx context.Context, limit, offset int) ([]*models.Enrollment, error) {
	const op = "storage.ListAllEnrollments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + enrollmentColumns + `
			  FROM enrollments
			  ORDER BY enrolled_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEnrollmentStatus меняет статус записи и возвращает количество
// изменённых строк. Истечение срока сюда не записывается никогда:
// expired — вычисляемое состояние.
func (s *Storage) UpdateEnrollmentStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateEnrollmentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE enrollments SET status = $2 WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountCurrentEnrollments считает актуальные записи пользователя.
// Условие повторяет предикат models.Enrollment.IsCurrent.
func (s *Storage) CountCurrentEnrollments(ctx context.Context, userUID string, now time.Time) (int, error) {
	const op = "storage.CountCurrentEnrollments"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM enrollments
			  WHERE user_uid = $1
			    AND status = $2
			    AND (expires_at IS NULL OR expires_at > $3)`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userUID, models.EnrollmentActive, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// FindUsersWithLapsedEnrollments возвращает uid пользователей, у которых
// есть хотя бы одна запись, хранящаяся как active, но с истёкшим сроком.
func (s *Storage) FindUsersWithLapsedEnrollments(ctx context.Context, now time.Time) ([]string, error) {
	const op = "storage.FindUsersWithLapsedEnrollments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT user_uid
			  FROM enrollments
			  WHERE status = $1
			    AND expires_at IS NOT NULL
			    AND expires_at < $2`
	rows, err := s.DB.QueryContext(ctx, query, models.EnrollmentActive, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []string
	for rows.Next() {
		var uid string
		if err = rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, uid)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ConsumeEnrollmentHours атомарно списывает hours часов с тарифицируемой
// записи. Охранное условие в WHERE не даёт остатку уйти в минус;
// для записей без лимита (hours_remaining IS NULL) списание — no-op
// с rowsAffected = 1.
func (s *Storage) ConsumeEnrollmentHours(ctx context.Context, id, hours int) (int, error) {
	const op = "storage.ConsumeEnrollmentHours"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE enrollments
			  SET hours_remaining = CASE
			      WHEN hours_remaining IS NULL THEN NULL
			      ELSE hours_remaining - $2
			  END
			  WHERE id = $1
			    AND (hours_remaining IS NULL OR hours_remaining >= $2)`
	result, err := s.DB.ExecContext(ctx, query, id, hours)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
