package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRedirect(t *testing.T) {
	rt := DefaultRoutes()

	tests := []struct {
		name        string
		isConfirmed *bool
		reason      string
		want        string
	}{
		{name: "подтверждён — без редиректа", isConfirmed: boolPtr(true), reason: "", want: ""},
		{name: "подтверждён с остаточной причиной — без редиректа", isConfirmed: boolPtr(true), reason: "stale", want: ""},
		{name: "отклонён с причиной", isConfirmed: boolPtr(false), reason: "duplicate account", want: "/rejected"},
		{name: "не подтверждён без причины", isConfirmed: boolPtr(false), reason: "", want: "/pending"},
		{name: "пустая причина трактуется как её отсутствие", isConfirmed: boolPtr(false), reason: "", want: "/pending"},
		{name: "решение не принято — на страницу входа", isConfirmed: nil, reason: "", want: "/auth/signin"},
		{name: "решение не принято, причина игнорируется", isConfirmed: nil, reason: "whatever", want: "/auth/signin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusRedirect(rt, tt.isConfirmed, tt.reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	admin := CapabilitiesFor("admin")
	assert.True(t, admin.ManageUsers)
	assert.True(t, admin.SendNewsletters)

	client := CapabilitiesFor("client")
	assert.False(t, client.ManageUsers)
	assert.True(t, client.BookMeetings)
	assert.True(t, client.SendMessages)

	unknown := CapabilitiesFor("bot")
	assert.Equal(t, Capabilities{}, unknown)
}
