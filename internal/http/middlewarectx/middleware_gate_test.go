package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/mentor-platform/internal/access"
	"github.com/magabrotheeeer/mentor-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/mentor-platform/internal/lib/jwt"
)

func TestAccessGateMiddleware(t *testing.T) {
	rt := access.DefaultRoutes()
	confirmed := true
	rejected := false

	tests := []struct {
		name         string
		path         string
		claims       *jwt.CustomClaims
		parseErr     bool
		wantStatus   int
		wantLocation string
	}{
		{
			name:       "публичная страница без токена",
			path:       "/about",
			claims:     nil,
			wantStatus: http.StatusOK,
		},
		{
			name:         "защищённая страница без токена",
			path:         "/dashboard",
			claims:       nil,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/auth/signin?callbackUrl=%2Fdashboard",
		},
		{
			name:       "подтверждённый клиент на dashboard",
			path:       "/dashboard",
			claims:     &jwt.CustomClaims{Role: "client", IsConfirmed: &confirmed},
			wantStatus: http.StatusOK,
		},
		{
			name:         "отклонённый клиент перенаправляется на rejected",
			path:         "/dashboard",
			claims:       &jwt.CustomClaims{Role: "client", IsConfirmed: &rejected, RejectionReason: "incomplete profile"},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/rejected",
		},
		{
			name:         "клиент в админке перенаправляется на unauthorized",
			path:         "/admin/users",
			claims:       &jwt.CustomClaims{Role: "client", IsConfirmed: &confirmed},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/unauthorized",
		},
		{
			name:         "битый токен трактуется как анонимный запрос",
			path:         "/dashboard",
			parseErr:     true,
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/auth/signin?callbackUrl=%2Fdashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parserMock := new(ParserMock)
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			mw := middlewarectx.AccessGateMiddleware(rt, parserMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.claims != nil {
				req.Header.Set("Authorization", "Bearer token")
				parserMock.On("ParseToken", "token").Return(tt.claims, nil).Once()
			}
			if tt.parseErr {
				req.Header.Set("Authorization", "Bearer broken")
				parserMock.On("ParseToken", "broken").Return(nil, assert.AnError).Once()
			}

			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			parserMock.AssertExpectations(t)
		})
	}
}
