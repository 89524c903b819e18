// Package services содержит бизнес-логику каталога услуг с кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

const listCacheKey = "services:published"

// CatalogRepository определяет методы для работы с каталогом в хранилище.
type CatalogRepository interface {
	// CreateService добавляет услугу и возвращает её ID.
	CreateService(ctx context.Context, service models.Service) (int, error)
	// ReadService возвращает услугу по ID.
	ReadService(ctx context.Context, id int) (*models.Service, error)
	// ListPublishedServices возвращает опубликованные услуги.
	ListPublishedServices(ctx context.Context) ([]*models.Service, error)
	// UpdateService обновляет услугу по ID.
	UpdateService(ctx context.Context, service models.Service, id int) (int, error)
	// RemoveService удаляет услугу по ID.
	RemoveService(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога, включая кеширование
// публичного списка услуг.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет услугу в каталог и сбрасывает кеш списка.
func (s *CatalogService) Create(ctx context.Context, req models.DummyService) (int, error) {
	service := models.Service{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationWeeks: req.DurationWeeks,
		IsPublished:   req.IsPublished,
	}
	id, err := s.repo.CreateService(ctx, service)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new service", slog.Int("id", id))
	s.invalidateList()
	return id, nil
}

// Read возвращает услугу по ID, используя кеш или репозиторий.
func (s *CatalogService) Read(ctx context.Context, id int) (*models.Service, error) {
	var result *models.Service
	cacheKey := fmt.Sprintf("service:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadService(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// ListPublished возвращает опубликованные услуги, используя кеш или репозиторий.
func (s *CatalogService) ListPublished(ctx context.Context) ([]*models.Service, error) {
	var result []*models.Service
	found, err := s.cache.Get(listCacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ListPublishedServices(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(listCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache services list", slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет услугу и сбрасывает кеш.
func (s *CatalogService) Update(ctx context.Context, req models.DummyService, id int) (int, error) {
	service := models.Service{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationWeeks: req.DurationWeeks,
		IsPublished:   req.IsPublished,
	}
	count, err := s.repo.UpdateService(ctx, service, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated service", slog.Int("id", id))

	if err := s.cache.Invalidate(fmt.Sprintf("service:%d", id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("err", err))
	}
	s.invalidateList()
	return count, nil
}

// Remove удаляет услугу из каталога и сбрасывает кеш.
func (s *CatalogService) Remove(ctx context.Context, id int) (int, error) {
	count, err := s.repo.RemoveService(ctx, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("removed service", slog.Int("id", id))

	if err := s.cache.Invalidate(fmt.Sprintf("service:%d", id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("err", err))
	}
	s.invalidateList()
	return count, nil
}

func (s *CatalogService) invalidateList() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate services list cache", slog.Any("err", err))
	}
}
