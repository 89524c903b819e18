package access

import (
	"testing"

	"github.com/magabrotheeeer/mentor-platform/internal/models"
	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func TestEvaluate_PublicPaths(t *testing.T) {
	rt := DefaultRoutes()

	// публичные пути доступны вообще без токена
	for _, path := range rt.PublicPaths {
		dec := Evaluate(rt, path, nil)
		assert.True(t, dec.Allow, "path %s must be public", path)
	}
	for _, path := range []string{"/assets/logo.svg", "/static/css/site.css"} {
		dec := Evaluate(rt, path, nil)
		assert.True(t, dec.Allow, "path %s must be public", path)
	}
}

func TestEvaluate_ServiceDetailAlwaysPublic(t *testing.T) {
	rt := DefaultRoutes()

	tests := []struct {
		name string
		tok  *Token
	}{
		{name: "без токена", tok: nil},
		{name: "неподтверждённый", tok: &Token{Role: models.RoleClient, IsConfirmed: boolPtr(false)}},
		{name: "отклонённый", tok: &Token{Role: models.RoleClient, IsConfirmed: boolPtr(false), RejectionReason: "incomplete profile"}},
		{name: "подтверждённый", tok: &Token{Role: models.RoleClient, IsConfirmed: boolPtr(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := Evaluate(rt, "/services/42", tt.tok)
			assert.True(t, dec.Allow)
		})
	}
}

func TestEvaluate_NoToken(t *testing.T) {
	rt := DefaultRoutes()

	dec := Evaluate(rt, "/dashboard/roadmap", nil)
	assert.False(t, dec.Allow)
	assert.Equal(t, "/auth/signin?callbackUrl=%2Fdashboard%2Froadmap", dec.RedirectTo)
}

func TestEvaluate_UnconfirmedUsers(t *testing.T) {
	rt := DefaultRoutes()

	tests := []struct {
		name string
		tok  *Token
		path string
		want string
	}{
		{
			name: "не подтверждён без причины — на pending",
			tok:  &Token{Role: models.RoleClient, IsConfirmed: boolPtr(false)},
			path: "/dashboard",
			want: rt.PendingPath,
		},
		{
			name: "отклонён с причиной — на rejected",
			tok:  &Token{Role: models.RoleClient, IsConfirmed: boolPtr(false), RejectionReason: "spam"},
			path: "/dashboard",
			want: rt.RejectedPath,
		},
		{
			name: "решение не принято — как не подтверждён",
			tok:  &Token{Role: models.RoleClient},
			path: "/dashboard/meetings",
			want: rt.PendingPath,
		},
		{
			name: "раздел сообщений не ослабляет правило для неподтверждённых",
			tok:  &Token{Role: models.RoleClient, IsConfirmed: boolPtr(false)},
			path: "/dashboard/messages/3",
			want: rt.PendingPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := Evaluate(rt, tt.path, tt.tok)
			assert.False(t, dec.Allow)
			assert.Equal(t, tt.want, dec.RedirectTo)
		})
	}
}

// Подтверждённый токен никогда не уводит на /pending или /rejected,
// какой бы путь ни запрашивался.
func TestEvaluate_ConfirmedNeverPendingOrRejected(t *testing.T) {
	rt := DefaultRoutes()
	tok := &Token{Role: models.RoleClient, IsConfirmed: boolPtr(true), RejectionReason: ""}

	paths := []string{"/dashboard", "/dashboard/meetings", "/dashboard/messages/1", "/admin", "/admin/users", "/enrollments"}
	for _, path := range paths {
		dec := Evaluate(rt, path, tok)
		assert.NotEqual(t, rt.PendingPath, dec.RedirectTo, "path %s", path)
		assert.NotEqual(t, rt.RejectedPath, dec.RedirectTo, "path %s", path)
	}
}

func TestEvaluate_AdminRules(t *testing.T) {
	rt := DefaultRoutes()

	client := &Token{Role: models.RoleClient, IsConfirmed: boolPtr(true)}
	admin := &Token{Role: models.RoleAdmin, IsConfirmed: boolPtr(true)}

	tests := []struct {
		name      string
		tok       *Token
		path      string
		wantAllow bool
		wantTo    string
	}{
		{name: "клиент в админку — unauthorized", tok: client, path: "/admin/users", wantTo: rt.UnauthorizedPath},
		{name: "админ в админку — пропуск", tok: admin, path: "/admin/users", wantAllow: true},
		{name: "админ на общем корне кабинета — в кабинет администратора", tok: admin, path: "/dashboard", wantTo: rt.AdminDashboardPath},
		{name: "клиент на корне кабинета — пропуск", tok: client, path: "/dashboard", wantAllow: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := Evaluate(rt, tt.path, tt.tok)
			assert.Equal(t, tt.wantAllow, dec.Allow)
			assert.Equal(t, tt.wantTo, dec.RedirectTo)
		})
	}
}

func TestEvaluate_ConfirmedMessagingCarveOut(t *testing.T) {
	rt := DefaultRoutes()

	dec := Evaluate(rt, "/dashboard/messages/7", &Token{Role: models.RoleClient, IsConfirmed: boolPtr(true)})
	assert.True(t, dec.Allow)
}
