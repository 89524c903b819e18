// Package services содержит бизнес-логику кампаний рассылок: создание
// кампании и постановку писем в очередь брокера.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// NewsletterRepository определяет методы для работы с кампаниями в хранилище.
type NewsletterRepository interface {
	// CreateCampaign сохраняет новую кампанию.
	CreateCampaign(ctx context.Context, campaign models.Campaign) error
	// ReadCampaign возвращает кампанию по ID.
	ReadCampaign(ctx context.Context, id string) (*models.Campaign, error)
	// UpdateCampaignStatus меняет статус кампании.
	UpdateCampaignStatus(ctx context.Context, id, status string) (int, error)
	// ListConfirmedRecipients возвращает адресатов рассылки.
	ListConfirmedRecipients(ctx context.Context) ([]*models.User, error)
}

// Publisher публикует письмо кампании в очередь.
type Publisher interface {
	Publish(letter models.CampaignLetter) error
}

// NewsletterService реализует бизнес-логику кампаний рассылок.
type NewsletterService struct {
	repo      NewsletterRepository
	publisher Publisher
	log       *slog.Logger
}

// NewNewsletterService создает новый экземпляр NewsletterService.
func NewNewsletterService(repo NewsletterRepository, publisher Publisher, log *slog.Logger) *NewsletterService {
	return &NewsletterService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create сохраняет черновик кампании и возвращает её ID.
func (s *NewsletterService) Create(ctx context.Context, req models.DummyCampaign) (string, error) {
	campaign := models.Campaign{
		ID:      uuid.New().String(),
		Subject: req.Subject,
		Body:    req.Body,
		Status:  models.CampaignDraft,
	}
	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		return "", err
	}
	s.log.Info("created campaign", slog.String("id", campaign.ID))
	return campaign.ID, nil
}

// Send ставит кампанию в очередь: по одному письму на каждого
// подтверждённого клиента. Ошибка публикации одного письма не
// останавливает постановку остальных.
func (s *NewsletterService) Send(ctx context.Context, campaignID string) (int, error) {
	campaign, err := s.repo.ReadCampaign(ctx, campaignID)
	if err != nil {
		return 0, err
	}

	recipients, err := s.repo.ListConfirmedRecipients(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, recipient := range recipients {
		letter := models.CampaignLetter{
			CampaignID: campaign.ID,
			Email:      recipient.Email,
			Username:   recipient.Username,
			Subject:    campaign.Subject,
			Body:       campaign.Body,
		}
		if err := s.publisher.Publish(letter); err != nil {
			s.log.Error("failed to publish letter", slog.String("email", recipient.Email), slog.Any("err", err))
			continue
		}
		queued++
	}

	if _, err := s.repo.UpdateCampaignStatus(ctx, campaignID, models.CampaignQueued); err != nil {
		return queued, err
	}
	s.log.Info("campaign queued", slog.String("id", campaignID), slog.Int("letters", queued))
	return queued, nil
}
