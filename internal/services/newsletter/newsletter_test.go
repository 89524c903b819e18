package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateCampaign(ctx context.Context, campaign models.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *RepoMock) ReadCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

func (m *RepoMock) UpdateCampaignStatus(ctx context.Context, id, status string) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListConfirmedRecipients(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(letter models.CampaignLetter) error {
	args := m.Called(letter)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestNewsletterService_Create(t *testing.T) {
	repo := new(RepoMock)
	publisher := new(PublisherMock)
	service := NewNewsletterService(repo, publisher, newNoopLogger())

	repo.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(c models.Campaign) bool {
		return c.Subject == "Новости августа" && c.Status == models.CampaignDraft && c.ID != ""
	})).Return(nil).Once()

	id, err := service.Create(context.Background(), models.DummyCampaign{
		Subject: "Новости августа",
		Body:    "Текст письма",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	repo.AssertExpectations(t)
}

func TestNewsletterService_Send(t *testing.T) {
	campaign := &models.Campaign{
		ID:      "c1",
		Subject: "Новости",
		Body:    "Текст",
		Status:  models.CampaignDraft,
	}
	recipients := []*models.User{
		{UID: "u1", Username: "alice", Email: "alice@example.com"},
		{UID: "u2", Username: "bob", Email: "bob@example.com"},
	}

	t.Run("все письма поставлены в очередь", func(t *testing.T) {
		repo := new(RepoMock)
		publisher := new(PublisherMock)
		service := NewNewsletterService(repo, publisher, newNoopLogger())

		repo.On("ReadCampaign", mock.Anything, "c1").Return(campaign, nil).Once()
		repo.On("ListConfirmedRecipients", mock.Anything).Return(recipients, nil).Once()
		publisher.On("Publish", mock.MatchedBy(func(l models.CampaignLetter) bool {
			return l.CampaignID == "c1" && l.Email == "alice@example.com"
		})).Return(nil).Once()
		publisher.On("Publish", mock.MatchedBy(func(l models.CampaignLetter) bool {
			return l.CampaignID == "c1" && l.Email == "bob@example.com"
		})).Return(nil).Once()
		repo.On("UpdateCampaignStatus", mock.Anything, "c1", models.CampaignQueued).Return(1, nil).Once()

		queued, err := service.Send(context.Background(), "c1")

		require.NoError(t, err)
		assert.Equal(t, 2, queued)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("ошибка публикации одного письма не останавливает остальные", func(t *testing.T) {
		repo := new(RepoMock)
		publisher := new(PublisherMock)
		service := NewNewsletterService(repo, publisher, newNoopLogger())

		repo.On("ReadCampaign", mock.Anything, "c1").Return(campaign, nil).Once()
		repo.On("ListConfirmedRecipients", mock.Anything).Return(recipients, nil).Once()
		publisher.On("Publish", mock.MatchedBy(func(l models.CampaignLetter) bool {
			return l.Email == "alice@example.com"
		})).Return(errors.New("broker down")).Once()
		publisher.On("Publish", mock.MatchedBy(func(l models.CampaignLetter) bool {
			return l.Email == "bob@example.com"
		})).Return(nil).Once()
		repo.On("UpdateCampaignStatus", mock.Anything, "c1", models.CampaignQueued).Return(1, nil).Once()

		queued, err := service.Send(context.Background(), "c1")

		require.NoError(t, err)
		assert.Equal(t, 1, queued)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("кампания не найдена", func(t *testing.T) {
		repo := new(RepoMock)
		publisher := new(PublisherMock)
		service := NewNewsletterService(repo, publisher, newNoopLogger())

		repo.On("ReadCampaign", mock.Anything, "missing").Return(nil, errors.New("not found")).Once()

		_, err := service.Send(context.Background(), "missing")

		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}
