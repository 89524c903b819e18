package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/mentor-platform/internal/access"
	"github.com/magabrotheeeer/mentor-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mentor-platform/internal/models"
)

func TestAdminOnlyMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		role           any
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "администратор проходит",
			role:           models.RoleAdmin,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "клиент отклоняется",
			role:           models.RoleClient,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "неизвестная роль получает пустой набор прав",
			role:           "manager",
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "роль отсутствует в контексте",
			role:           nil,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.AdminOnlyMiddleware(logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/pending", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, tt.role))
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestRequireCapabilityMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		role           string
		allowed        func(access.Capabilities) bool
		wantStatusCode int
	}{
		{
			name:           "администратор управляет каталогом",
			role:           models.RoleAdmin,
			allowed:        func(c access.Capabilities) bool { return c.ManageCatalog },
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "клиент не управляет каталогом",
			role:           models.RoleClient,
			allowed:        func(c access.Capabilities) bool { return c.ManageCatalog },
			wantStatusCode: http.StatusForbidden,
		},
		{
			name:           "клиент отправляет сообщения",
			role:           models.RoleClient,
			allowed:        func(c access.Capabilities) bool { return c.SendMessages },
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "клиент не рассылает кампании",
			role:           models.RoleClient,
			allowed:        func(c access.Capabilities) bool { return c.SendNewsletters },
			wantStatusCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.RequireCapabilityMiddleware(logger, tt.allowed)(nextHandler)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/services", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, tt.role))
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
		})
	}
}
