package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// CreateRoadmap создаёт дорожную карту вместе с вехами и возвращает её ID.
// Вставка выполняется в транзакции: план без вех не имеет смысла.
func (s *Storage) CreateRoadmap(ctx context.Context, roadmap models.Roadmap, milestones []string) (int, error) {
	const op = "storage.CreateRoadmap"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int
	query := `INSERT INTO roadmaps (enrollment_id, title) VALUES ($1, $2) RETURNING id`
	if err = tx.QueryRowContext(ctx, query, roadmap.EnrollmentID, roadmap.Title).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO milestones (roadmap_id, title, status, position) VALUES ($1, $2, $3, $4)`
	for i, title := range milestones {
		if _, err = tx.ExecContext(ctx, query, newID, title, models.MilestonePending, i+1); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListRoadmapMilestones возвращает вехи дорожной карты по порядку.
func (s *Storage) ListRoadmapMilestones(ctx context.Context, roadmapID int) ([]*models.Milestone, error) {
	const op = "storage.ListRoadmapMilestones"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, roadmap_id, title, status, position
			  FROM milestones
			  WHERE roadmap_id = $1
			  ORDER BY position`
	rows, err := s.DB.QueryContext(ctx, query, roadmapID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Milestone
	for rows.Next() {
		var m models.Milestone
		if err = rows.Scan(&m.ID, &m.RoadmapID, &m.Title, &m.Status, &m.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetRoadmapByEnrollment возвращает дорожную карту записи на услугу.
func (s *Storage) GetRoadmapByEnrollment(ctx context.Context, enrollmentID int) (*models.Roadmap, error) {
	const op = "storage.GetRoadmapByEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, enrollment_id, title, created_at
			  FROM roadmaps
			  WHERE enrollment_id = $1`
	var r models.Roadmap
	row := s.DB.QueryRowContext(ctx, query, enrollmentID)
	if err := row.Scan(&r.ID, &r.EnrollmentID, &r.Title, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &r, nil
}

// UpdateMilestoneStatus меняет статус вехи и возвращает количество изменённых строк.
func (s *Storage) UpdateMilestoneStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateMilestoneStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE milestones SET status = $2 WHERE id = $1`
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
