// Package services содержит бизнес-логику дорожных карт клиентов.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

// RoadmapRepository определяет методы для работы с дорожными картами в хранилище.
type RoadmapRepository interface {
	// CreateRoadmap создаёт план вместе с вехами.
	CreateRoadmap(ctx context.Context, roadmap models.Roadmap, milestones []string) (int, error)
	// GetRoadmapByEnrollment возвращает план записи.
	GetRoadmapByEnrollment(ctx context.Context, enrollmentID int) (*models.Roadmap, error)
	// ListRoadmapMilestones возвращает вехи плана по порядку.
	ListRoadmapMilestones(ctx context.Context, roadmapID int) ([]*models.Milestone, error)
	// UpdateMilestoneStatus меняет статус вехи.
	UpdateMilestoneStatus(ctx context.Context, id int, status string) (int, error)
	// ReadEnrollment возвращает запись по ID.
	ReadEnrollment(ctx context.Context, id int) (*models.Enrollment, error)
}

// RoadmapService реализует бизнес-логику дорожных карт.
type RoadmapService struct {
	repo RoadmapRepository
	log  *slog.Logger
}

// NewRoadmapService создает новый экземпляр RoadmapService.
func NewRoadmapService(repo RoadmapRepository, log *slog.Logger) *RoadmapService {
	return &RoadmapService{
		repo: repo,
		log:  log,
	}
}

// Create создаёт дорожную карту для записи на услугу.
func (s *RoadmapService) Create(ctx context.Context, req models.DummyRoadmap) (int, error) {
	if _, err := s.repo.ReadEnrollment(ctx, req.EnrollmentID); err != nil {
		return 0, fmt.Errorf("enrollment not found: %w", err)
	}

	roadmap := models.Roadmap{
		EnrollmentID: req.EnrollmentID,
		Title:        req.Title,
	}
	id, err := s.repo.CreateRoadmap(ctx, roadmap, req.Milestones)
	if err != nil {
		return 0, err
	}
	s.log.Info("created roadmap", slog.Int("id", id), slog.Int("enrollment_id", req.EnrollmentID))
	return id, nil
}

// List возвращает план записи вместе с вехами. Клиент может смотреть
// только планы собственных записей.
func (s *RoadmapService) List(ctx context.Context, requesterUID, role string, enrollmentID int) (*models.Roadmap, []*models.Milestone, error) {
	enrollment, err := s.repo.ReadEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, nil, err
	}
	if role != models.RoleAdmin && enrollment.UserUID != requesterUID {
		return nil, nil, fmt.Errorf("enrollment %d does not belong to user", enrollmentID)
	}

	roadmap, err := s.repo.GetRoadmapByEnrollment(ctx, enrollmentID)
	if err != nil {
		return nil, nil, err
	}
	milestones, err := s.repo.ListRoadmapMilestones(ctx, roadmap.ID)
	if err != nil {
		return nil, nil, err
	}
	return roadmap, milestones, nil
}

// UpdateMilestone меняет статус вехи.
func (s *RoadmapService) UpdateMilestone(ctx context.Context, id int, req models.DummyMilestoneUpdate) (int, error) {
	count, err := s.repo.UpdateMilestoneStatus(ctx, id, req.Status)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated milestone", slog.Int("id", id), slog.String("status", req.Status))
	return count, nil
}
