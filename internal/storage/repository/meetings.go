package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// CreateMeeting вставляет новую встречу и возвращает её ID.
func (s *Storage) CreateMeeting(ctx context.Context, meeting models.Meeting) (int, error) {
	const op = "storage.CreateMeeting"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO meetings (enrollment_id, user_uid, scheduled_at, duration_hours, status, notes)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		meeting.EnrollmentID, meeting.UserUID, meeting.ScheduledAt, meeting.DurationHours,
		meeting.Status, meeting.Notes).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMeeting возвращает встречу по ID.
func (s *Storage) ReadMeeting(ctx context.Context, id int) (*models.Meeting, error) {
	const op = "storage.ReadMeeting"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, enrollment_id, user_uid, scheduled_at, duration_hours, status, notes
			  FROM meetings WHERE id = $1`
	var m models.Meeting
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&m.ID, &m.EnrollmentID, &m.UserUID, &m.ScheduledAt,
		&m.DurationHours, &m.Status, &m.Notes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// ListMeetings возвращает встречи пользователя с пагинацией.
func (s *Storage) ListMeetings(ctx context.Context, userUID string, limit, offset int) ([]*models.Meeting, error) {
	const op = "storage.ListMeetings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, enrollment_id, user_uid, scheduled_at, duration_hours, status, notes
			  FROM meetings
			  WHERE user_uid = $1
			  ORDER BY scheduled_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err = rows.Scan(&m.ID, &m.EnrollmentID, &m.UserUID, &m.ScheduledAt,
			&m.DurationHours, &m.Status, &m.Notes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMeetingStatus меняет статус встречи и возвращает количество изменённых строк.
func (s *Storage) UpdateMeetingStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateMeetingStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE meetings SET status = $2 WHERE id = $1`
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

// CountUpcomingMeetings считает запланированные встречи после now.
func (s *Storage) CountUpcomingMeetings(ctx context.Context, now time.Time) (int, error) {
	const op = "storage.CountUpcomingMeetings"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM meetings WHERE status = $1 AND scheduled_at > $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, models.MeetingScheduled, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
