// Package services содержит бизнес-логику сводки для админ-панели.
package services

import (
	"context"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
	"github.com/magabrotheeeer/mentor-platform/internal/storage/repository"
)

// StatsRepository определяет методы подсчёта агрегатов для сводки.
type StatsRepository interface {
	CountUsersByConfirmation(ctx context.Context) (*repository.UserCounts, error)
	CountCurrentEnrollmentsAll(ctx context.Context, now time.Time) (int, error)
	CountUpcomingMeetings(ctx context.Context, now time.Time) (int, error)
	CountCampaignsByStatus(ctx context.Context, status string) (int, error)
}

// Dashboard — сводка значений для главной страницы админ-панели.
type Dashboard struct {
	Users              repository.UserCounts `json:"users"`
	CurrentEnrollments int                   `json:"current_enrollments"`
	UpcomingMeetings   int                   `json:"upcoming_meetings"`
	QueuedCampaigns    int                   `json:"queued_campaigns"`
}

// StatsService собирает сводку из хранилища.
type StatsService struct {
	repo StatsRepository
	now  func() time.Time
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{
		repo: repo,
		now:  time.Now,
	}
}

// Collect возвращает текущую сводку по пользователям, записям,
// встречам и кампаниям.
func (s *StatsService) Collect(ctx context.Context) (*Dashboard, error) {
	now := s.now()

	users, err := s.repo.CountUsersByConfirmation(ctx)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.repo.CountCurrentEnrollmentsAll(ctx, now)
	if err != nil {
		return nil, err
	}
	meetings, err := s.repo.CountUpcomingMeetings(ctx, now)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.repo.CountCampaignsByStatus(ctx, models.CampaignQueued)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:              *users,
		CurrentEnrollments: enrollments,
		UpcomingMeetings:   meetings,
		QueuedCampaigns:    campaigns,
	}, nil
}
