package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// CreateService добавляет услугу в каталог и возвращает её ID.
func (s *Storage) CreateService(ctx context.Context, service models.Service) (int, error) {
	const op = "storage.CreateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO services (name, description, price, duration_weeks, is_published)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		service.Name, service.Description, service.Price, service.DurationWeeks,
		service.IsPublished).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadService возвращает услугу по ID.
func (s *Storage) ReadService(ctx context.Context, id int) (*models.Service, error) {
	const op = "storage.ReadService"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, duration_weeks, is_published
			  FROM services WHERE id = $1`
	var result models.Service
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&result.ID, &result.Name, &result.Description, &result.Price,
		&result.DurationWeeks, &result.IsPublished); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListPublishedServices возвращает опубликованные услуги каталога.
func (s *Storage) ListPublishedServices(ctx context.Context) ([]*models.Service, error) {
	const op = "storage.ListPublishedServices"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, price, duration_weeks, is_published
			  FROM services
			  WHERE is_published = TRUE
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Service
	for rows.Next() {
		var svc models.Service
		if err = rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price,
			&svc.DurationWeeks, &svc.IsPublished); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &svc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateService обновляет услугу каталога и возвращает количество изменённых строк.
func (s *Storage) UpdateService(ctx context.Context, service models.Service, id int) (int, error) {
	const op = "storage.UpdateService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE services
			  SET name = $1, description = $2, price = $3, duration_weeks = $4, is_published = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		service.Name, service.Description, service.Price, service.DurationWeeks,
		service.IsPublished, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveService удаляет услугу из каталога.
func (s *Storage) RemoveService(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveService"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM services WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
