package mocks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/mocks"
)

func TestMockTokenService_DefaultRoundTrip(t *testing.T) {
	tokens := mocks.NewMockTokenService()

	token, err := tokens.Generate(domain.TokenPayload{UserID: "u1", Role: domain.RoleAdmin, Type: domain.TokenReset}, 0)
	require.NoError(t, err)

	res := tokens.Verify(token)
	require.True(t, res.Status)
	assert.Equal(t, "u1", res.Data.UserID)
	assert.Equal(t, domain.RoleAdmin, res.Data.Role)
	assert.Equal(t, domain.TokenReset, res.Data.Type)
	require.Len(t, tokens.Issued, 1)

	assert.Equal(t, domain.MsgNotAuthorized, tokens.Verify("garbage").Message)
}

func TestMockCasbinEnforcer_DefaultPolicies(t *testing.T) {
	enforcer := mocks.NewMockCasbinEnforcer()

	added, err := enforcer.AddPolicy("role_ADMIN", "/admin/users", "GET")
	require.NoError(t, err)
	assert.True(t, added)

	added, _ = enforcer.AddPolicy("role_ADMIN", "/admin/users", "GET")
	assert.False(t, added, "duplicates are rejected")

	ok, _ := enforcer.Enforce("role_ADMIN", "/admin/users", "GET")
	assert.True(t, ok)
	ok, _ = enforcer.Enforce("role_USER", "/admin/users", "GET")
	assert.False(t, ok)

	removed, _ := enforcer.RemovePolicy("role_ADMIN", "/admin/users", "GET")
	assert.True(t, removed)
	policies, _ := enforcer.GetPolicy()
	assert.Empty(t, policies)
}

func TestMockMailer_RecordsMessages(t *testing.T) {
	mailer := mocks.NewMockMailer()
	mailer.SendFunc = func(ctx context.Context, to, subject, plainText, html string) domain.Result {
		return domain.Failure("smtp down")
	}

	res := mailer.Send(context.Background(), "a@example.com", "hi", "plain", "<p>html</p>")
	assert.False(t, res.Status)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@example.com", sent[0].To)
}
