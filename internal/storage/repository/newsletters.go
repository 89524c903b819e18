package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// CreateCampaign сохраняет новую кампанию рассылки.
func (s *Storage) CreateCampaign(ctx context.Context, campaign models.Campaign) error {
	const op = "storage.CreateCampaign"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO campaigns (id, subject, body, status)
			  VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query,
		campaign.ID, campaign.Subject, campaign.Body, campaign.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ReadCampaign возвращает кампанию по ID.
func (s *Storage) ReadCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	const op = "storage.ReadCampaign"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subject, body, status, created_at
			  FROM campaigns WHERE id = $1`
	var c models.Campaign
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&c.ID, &c.Subject, &c.Body, &c.Status, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}

// UpdateCampaignStatus меняет статус кампании.
func (s *Storage) UpdateCampaignStatus(ctx context.Context, id, status string) (int, error) {
	const op = "storage.UpdateCampaignStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE campaigns SET status = $2 WHERE id = $1`
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

// CountCampaignsByStatus считает кампании в заданном статусе.
func (s *Storage) CountCampaignsByStatus(ctx context.Context, status string) (int, error) {
	const op = "storage.CountCampaignsByStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM campaigns WHERE status = $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
