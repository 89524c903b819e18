package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Новый аккаунт создаётся неподтверждённым (is_confirmed = NULL) и с
// неактивной клиентской сессией.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, role, session_status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role,
		models.SessionInactive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var isConfirmed sql.NullBool
	var rejectionReason, activatedBy sql.NullString
	var activatedAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&isConfirmed, &rejectionReason, &u.SessionStatus,
		&activatedAt, &activatedBy, &u.CreatedAt); err != nil {
		return nil, err
	}
	if isConfirmed.Valid {
		u.IsConfirmed = &isConfirmed.Bool
	}
	if rejectionReason.Valid {
		u.RejectionReason = rejectionReason.String
	}
	if activatedAt.Valid {
		u.SessionActivatedAt = &activatedAt.Time
	}
	if activatedBy.Valid {
		u.SessionActivatedBy = &activatedBy.String
	}
	return u, nil
}

const userColumns = `uid, email, username, password_hash, role, is_confirmed,
			      rejection_reason, session_status, session_activated_at,
			      session_activated_by, created_at`

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListPendingUsers возвращает пользователей, по которым решение ещё не принято.
func (s *Storage) ListPendingUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListPendingUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE is_confirmed IS NULL
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ConfirmUser подтверждает аккаунт. Причина отклонения сбрасывается всегда:
// повторное одобрение ранее отклонённого аккаунта — штатный путь.
func (s *Storage) ConfirmUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.ConfirmUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_confirmed = TRUE, rejection_reason = NULL
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RejectUser отклоняет аккаунт с обязательной причиной.
func (s *Storage) RejectUser(ctx context.Context, userUID, reason string) (int, error) {
	const op = "storage.RejectUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_confirmed = FALSE, rejection_reason = $2
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, reason)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// GetUserSessionState возвращает срез полей клиентской сессии пользователя.
func (s *Storage) GetUserSessionState(ctx context.Context, userUID string) (*models.SessionState, error) {
	const op = "storage.GetUserSessionState"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT session_status, session_activated_at, session_activated_by
			  FROM users
			  WHERE uid = $1`
	var state models.SessionState
	var activatedAt sql.NullTime
	var activatedBy sql.NullString
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&state.Status, &activatedAt, &activatedBy); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if activatedAt.Valid {
		state.ActivatedAt = &activatedAt.Time
	}
	if activatedBy.Valid {
		state.ActivatedBy = &activatedBy.String
	}
	return &state, nil
}

// UpdateUserSessionStatus переводит статус клиентской сессии из fromStatus
// в toStatus. Условие WHERE по текущему статусу делает запись
// compare-and-set: конкурирующая реконсиляция, успевшая первой, оставит
// rowsAffected = 0, и проигравшая сторона не затрёт её результат.
func (s *Storage) UpdateUserSessionStatus(ctx context.Context, userUID, fromStatus, toStatus string,
	activatedAt *time.Time, activatedBy *string) (int, error) {
	const op = "storage.UpdateUserSessionStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET session_status = $3, session_activated_at = $4, session_activated_by = $5
			  WHERE uid = $1 AND session_status = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, fromStatus, toStatus, activatedAt, activatedBy)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetUserSessionStatus выставляет статус сессии безусловно.
// Используется только административным переопределением (suspend/unsuspend).
func (s *Storage) SetUserSessionStatus(ctx context.Context, userUID, status string,
	activatedAt *time.Time, activatedBy *string) (int, error) {
	const op = "storage.SetUserSessionStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET session_status = $2, session_activated_at = $3, session_activated_by = $4
			  WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID, status, activatedAt, activatedBy)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListConfirmedRecipients возвращает адресатов рассылки: подтверждённых
// пользователей с ролью client.
func (s *Storage) ListConfirmedRecipients(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListConfirmedRecipients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE is_confirmed = TRUE AND role = $1`
	rows, err := s.DB.QueryContext(ctx, query, models.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
