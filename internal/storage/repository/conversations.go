package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// GetOrCreateConversation возвращает диалог клиента, создавая его при
// первом обращении.
func (s *Storage) GetOrCreateConversation(ctx context.Context, clientUID string) (int, error) {
	const op = "storage.GetOrCreateConversation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `SELECT id FROM conversations WHERE client_uid = $1`
	err := s.DB.QueryRowContext(ctx, query, clientUID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO conversations (client_uid) VALUES ($1) RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query, clientUID).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CreateMessage добавляет сообщение в диалог и обновляет время последнего сообщения.
func (s *Storage) CreateMessage(ctx context.Context, message models.Message) (int, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO messages (conversation_id, sender_uid, body, sent_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		message.ConversationID, message.SenderUID, message.Body, message.SentAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query = `UPDATE conversations SET last_message = $2 WHERE id = $1`
	if _, err = s.DB.ExecContext(ctx, query, message.ConversationID, message.SentAt); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMessages возвращает сообщения диалога с пагинацией.
func (s *Storage) ListMessages(ctx context.Context, conversationID, limit, offset int) ([]*models.Message, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, conversation_id, sender_uid, body, sent_at
			  FROM messages
			  WHERE conversation_id = $1
			  ORDER BY sent_at
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err = rows.Scan(&m.ID, &m.ConversationID, &m.SenderUID, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetConversationOwner возвращает uid клиента, которому принадлежит диалог.
func (s *Storage) GetConversationOwner(ctx context.Context, conversationID int) (string, error) {
	const op = "storage.GetConversationOwner"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var clientUID string
	query := `SELECT client_uid FROM conversations WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, query, conversationID).Scan(&clientUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return clientUID, nil
}
