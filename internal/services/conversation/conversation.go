// Package services содержит бизнес-логику внутренних диалогов между
// клиентом и администратором.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// ConversationRepository определяет методы для работы с диалогами в хранилище.
type ConversationRepository interface {
	// GetOrCreateConversation возвращает диалог клиента, создавая при необходимости.
	GetOrCreateConversation(ctx context.Context, clientUID string) (int, error)
	// CreateMessage добавляет сообщение в диалог.
	CreateMessage(ctx context.Context, message models.Message) (int, error)
	// ListMessages возвращает сообщения диалога с пагинацией.
	ListMessages(ctx context.Context, conversationID, limit, offset int) ([]*models.Message, error)
	// GetConversationOwner возвращает uid клиента-владельца диалога.
	GetConversationOwner(ctx context.Context, conversationID int) (string, error)
}

// ConversationService реализует бизнес-логику диалогов.
type ConversationService struct {
	repo ConversationRepository
	log  *slog.Logger
}

// NewConversationService создает новый экземпляр ConversationService.
func NewConversationService(repo ConversationRepository, log *slog.Logger) *ConversationService {
	return &ConversationService{
		repo: repo,
		log:  log,
	}
}

// Send отправляет сообщение от пользователя. Клиент всегда пишет в свой
// диалог (создаваемый при первом сообщении), администратор — в диалог
// указанного клиента.
func (s *ConversationService) Send(ctx context.Context, senderUID, role string, clientUID string, req models.DummyMessage) (int, error) {
	ownerUID := senderUID
	if role == models.RoleAdmin {
		if clientUID == "" {
			return 0, fmt.Errorf("admin message requires client uid")
		}
		ownerUID = clientUID
	}

	conversationID, err := s.repo.GetOrCreateConversation(ctx, ownerUID)
	if err != nil {
		return 0, err
	}

	message := models.Message{
		ConversationID: conversationID,
		SenderUID:      senderUID,
		Body:           req.Body,
		SentAt:         time.Now(),
	}
	id, err := s.repo.CreateMessage(ctx, message)
	if err != nil {
		return 0, err
	}
	s.log.Info("sent message", slog.Int("conversation_id", conversationID), slog.Int("message_id", id))
	return id, nil
}

// ListMessages возвращает сообщения диалога. Клиент может читать только
// собственный диалог; администратор — любой.
func (s *ConversationService) ListMessages(ctx context.Context, requesterUID, role string, conversationID, limit, offset int) ([]*models.Message, error) {
	if role != models.RoleAdmin {
		owner, err := s.repo.GetConversationOwner(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		if owner != requesterUID {
			return nil, fmt.Errorf("conversation %d does not belong to user", conversationID)
		}
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}
