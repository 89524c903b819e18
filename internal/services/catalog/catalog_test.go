package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateService(ctx context.Context, service models.Service) (int, error) {
	args := m.Called(ctx, service)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ReadService(ctx context.Context, id int) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *RepoMock) ListPublishedServices(ctx context.Context) ([]*models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Service), args.Error(1)
}

func (m *RepoMock) UpdateService(ctx context.Context, service models.Service, id int) (int, error) {
	args := m.Called(ctx, service, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveService(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCatalogService_ListPublished(t *testing.T) {
	published := []*models.Service{
		{ID: 1, Name: "Карьерное менторство", IsPublished: true},
		{ID: 2, Name: "Разбор резюме", IsPublished: true},
	}

	t.Run("промах кеша идёт в репозиторий и кеширует список", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListPublishedServices", mock.Anything).Return(published, nil).Once()

		cache := new(CacheMock)
		cache.On("Get", listCacheKey, mock.Anything).Return(false, nil).Once()
		cache.On("Set", listCacheKey, published, time.Hour).Return(nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		got, err := svc.ListPublished(context.Background())

		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш не обращается к репозиторию", func(t *testing.T) {
		repo := new(RepoMock)

		cache := new(CacheMock)
		cache.On("Get", listCacheKey, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(1).(*[]*models.Service)
				*out = published
			}).
			Return(true, nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		got, err := svc.ListPublished(context.Background())

		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertNotCalled(t, "ListPublishedServices", mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка репозитория пробрасывается", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListPublishedServices", mock.Anything).
			Return(nil, errors.New("connection refused")).Once()

		cache := new(CacheMock)
		cache.On("Get", listCacheKey, mock.Anything).Return(false, nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		_, err := svc.ListPublished(context.Background())
		require.Error(t, err)
	})
}

func TestCatalogService_Read(t *testing.T) {
	service := &models.Service{ID: 7, Name: "Менторская программа", Price: 15000}

	t.Run("промах кеша кеширует услугу", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ReadService", mock.Anything, 7).Return(service, nil).Once()

		cache := new(CacheMock)
		cache.On("Get", "service:7", mock.Anything).Return(false, nil).Once()
		cache.On("Set", "service:7", service, time.Hour).Return(nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		got, err := svc.Read(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, service.Name, got.Name)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш возвращает услугу без репозитория", func(t *testing.T) {
		repo := new(RepoMock)

		cache := new(CacheMock)
		cache.On("Get", "service:7", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(1).(**models.Service)
				*out = service
			}).
			Return(true, nil).Once()

		svc := NewCatalogService(repo, cache, newNoopLogger())
		got, err := svc.Read(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, 7, got.ID)
		repo.AssertNotCalled(t, "ReadService", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_Update(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateService", mock.Anything, mock.MatchedBy(func(s models.Service) bool {
		return s.Name == "Новое имя"
	}), 7).Return(1, nil).Once()

	cache := new(CacheMock)
	cache.On("Invalidate", "service:7").Return(nil).Once()
	cache.On("Invalidate", listCacheKey).Return(nil).Once()

	svc := NewCatalogService(repo, cache, newNoopLogger())
	count, err := svc.Update(context.Background(), models.DummyService{Name: "Новое имя"}, 7)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogService_Remove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RemoveService", mock.Anything, 7).Return(1, nil).Once()

	cache := new(CacheMock)
	cache.On("Invalidate", "service:7").Return(nil).Once()
	cache.On("Invalidate", listCacheKey).Return(nil).Once()

	svc := NewCatalogService(repo, cache, newNoopLogger())
	count, err := svc.Remove(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	cache.AssertExpectations(t)
}
