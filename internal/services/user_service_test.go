package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/repositories"
	"github.com/you/blogsvc/internal/mocks"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Account{}, &domain.Post{}))
	return db
}

// newTestUserService wires a user service over sqlite with sequential ids
func newTestUserService(t *testing.T) (*UserServiceImpl, *mocks.MockAuditLogger) {
	t.Helper()

	audit := mocks.NewMockAuditLogger()
	svc := NewUserService(repositories.NewGormAccountStore(setupTestDB(t)), mocks.NewMockPasswordService(), audit, zap.NewNop())
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("user-%d", n)
	}
	return svc, audit
}

func addAccount(t *testing.T, svc *UserServiceImpl, username, email string) *domain.Account {
	t.Helper()
	res := svc.Add(context.Background(), domain.AccountDraft{Username: username, Email: email, Password: "secret"})
	require.True(t, res.Status, res.Message)
	return res.Data
}

func TestUserService_Add(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		draft           domain.AccountDraft
		expectedStatus  bool
		expectedMessage string
		validate        func(t *testing.T, a *domain.Account)
	}{
		{
			name:           "defaults to passive user",
			draft:          domain.AccountDraft{Username: "carol", Email: "carol@example.com", Password: "pw"},
			expectedStatus: true,
			validate: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, domain.StatusPassive, a.Status)
				assert.Equal(t, domain.RoleUser, a.Role)
				assert.Equal(t, "hashed_pw", a.PasswordHash)
				assert.False(t, a.CreatedAt.IsZero())
			},
		},
		{
			name:           "explicit role and status are normalized",
			draft:          domain.AccountDraft{Username: "root", Email: "root@example.com", Password: "pw", Role: "admin", Status: "active"},
			expectedStatus: true,
			validate: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, domain.RoleAdmin, a.Role)
				assert.Equal(t, domain.StatusActive, a.Status)
			},
		},
		{
			name:            "duplicate username",
			draft:           domain.AccountDraft{Username: "alice", Email: "other@example.com", Password: "pw"},
			expectedMessage: domain.MsgUsernameTaken,
		},
		{
			name:            "duplicate email",
			draft:           domain.AccountDraft{Username: "alice2", Email: "alice@example.com", Password: "pw"},
			expectedMessage: domain.MsgEmailTaken,
		},
		{
			name:            "username checked before email",
			draft:           domain.AccountDraft{Username: "alice", Email: "alice@example.com", Password: "pw"},
			expectedMessage: domain.MsgUsernameTaken,
		},
		{
			name:            "password longer than bcrypt accepts",
			draft:           domain.AccountDraft{Username: "dave", Email: "dave@example.com", Password: strings.Repeat("x", 80)},
			expectedMessage: domain.MsgPasswordTooLong,
		},
		{
			name:            "invalid status",
			draft:           domain.AccountDraft{Username: "dave", Email: "dave@example.com", Status: "FROZEN"},
			expectedMessage: domain.MsgInvalidStatus,
		},
		{
			name:            "invalid role",
			draft:           domain.AccountDraft{Username: "dave", Email: "dave@example.com", Role: "OWNER"},
			expectedMessage: domain.MsgInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestUserService(t)
			addAccount(t, svc, "alice", "alice@example.com")

			res := svc.Add(ctx, tt.draft)
			assert.Equal(t, tt.expectedStatus, res.Status)
			if !tt.expectedStatus {
				assert.Equal(t, tt.expectedMessage, res.Message)
				assert.Nil(t, res.Data)
				return
			}
			require.NotNil(t, res.Data)
			tt.validate(t, res.Data)
		})
	}
}

func TestUserService_DeletedAccountsFreeTheirNames(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)
	alice := addAccount(t, svc, "alice", "alice@example.com")

	require.True(t, svc.Delete(ctx, alice.ID).Status)

	res := svc.GetByUsername(ctx, "alice")
	assert.False(t, res.Status)
	assert.Equal(t, domain.MsgUserNotExists, res.Message)

	again := svc.Add(ctx, domain.AccountDraft{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.True(t, again.Status, again.Message)
	assert.NotEqual(t, alice.ID, again.Data.ID)
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)
	alice := addAccount(t, svc, "alice", "alice@example.com")
	addAccount(t, svc, "bob", "bob@example.com")

	assert.Equal(t, alice.ID, svc.GetByUsername(ctx, "alice").Data.ID)
	assert.Equal(t, alice.ID, svc.GetByEmail(ctx, "alice@example.com").Data.ID)
	assert.Equal(t, "bob", svc.GetByID(ctx, "user-2").Data.Username)

	for _, res := range []domain.DataResult[*domain.Account]{
		svc.GetByUsername(ctx, "nobody"),
		svc.GetByEmail(ctx, "nobody@example.com"),
		svc.GetByID(ctx, "user-99"),
	} {
		assert.False(t, res.Status)
		assert.Equal(t, domain.MsgUserNotExists, res.Message)
	}

	list := svc.List(ctx)
	require.True(t, list.Status)
	assert.Len(t, list.Data, 2)
}

func TestUserService_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	svc, audit := newTestUserService(t)
	alice := addAccount(t, svc, "alice", "alice@example.com")

	res := svc.Activate(ctx, alice.ID)
	require.True(t, res.Status)
	assert.Equal(t, domain.StatusActive, res.Data.Status)
	assert.Equal(t, domain.MsgAccountActivated, res.Message)

	res = svc.Suspend(ctx, alice.ID)
	require.True(t, res.Status)
	assert.Equal(t, domain.StatusSuspended, res.Data.Status)

	res = svc.Delete(ctx, alice.ID)
	require.True(t, res.Status)
	assert.Equal(t, domain.StatusDeleted, res.Data.Status)

	// DELETED is terminal
	res = svc.Activate(ctx, alice.ID)
	assert.False(t, res.Status)
	assert.Equal(t, domain.MsgUserNotExists, res.Message)

	assert.Equal(t, []domain.AuditEventType{
		domain.AccountActivatedEvent,
		domain.AccountSuspendedEvent,
		domain.AccountDeletedEvent,
	}, audit.Types())

	purged := svc.Purge(ctx, alice.ID)
	require.True(t, purged.Status)
	assert.Equal(t, domain.MsgAccountPurged, purged.Message)

	gone := svc.Purge(ctx, alice.ID)
	assert.False(t, gone.Status)
	assert.Equal(t, domain.MsgUserNotExists, gone.Message)
}

func TestUserService_PurgeAnyStatus(t *testing.T) {
	ctx := context.Background()
	svc, audit := newTestUserService(t)
	alice := addAccount(t, svc, "alice", "alice@example.com")
	require.True(t, svc.Activate(ctx, alice.ID).Status)

	purged := svc.Purge(ctx, alice.ID)
	require.True(t, purged.Status, purged.Message)
	assert.Equal(t, domain.StatusActive, purged.Data.Status)

	lookup := svc.GetByID(ctx, alice.ID)
	assert.False(t, lookup.Status)
	assert.Equal(t, domain.MsgUserNotExists, lookup.Message)
	assert.Contains(t, audit.Types(), domain.AccountPurgedEvent)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }
	status := func(s domain.AccountStatus) *domain.AccountStatus { return &s }
	role := func(r domain.Role) *domain.Role { return &r }

	tests := []struct {
		name            string
		id              string
		patch           domain.AccountPatch
		expectedMessage string
		validate        func(t *testing.T, a *domain.Account)
	}{
		{name: "missing account", id: "user-99", patch: domain.AccountPatch{Username: str("x")}, expectedMessage: domain.MsgUserNotExists},
		{name: "username taken", id: "user-1", patch: domain.AccountPatch{Username: str("bob")}, expectedMessage: domain.MsgUsernameTaken},
		{name: "email is immutable", id: "user-1", patch: domain.AccountPatch{Email: str("new@example.com")}, expectedMessage: domain.MsgEmailImmutable},
		{name: "invalid status", id: "user-1", patch: domain.AccountPatch{Status: status("FROZEN")}, expectedMessage: domain.MsgInvalidStatus},
		{name: "invalid role", id: "user-1", patch: domain.AccountPatch{Role: role("ROOT")}, expectedMessage: domain.MsgInvalidRole},
		{name: "password too long", id: "user-1", patch: domain.AccountPatch{Password: str(strings.Repeat("x", 80))}, expectedMessage: domain.MsgPasswordTooLong},
		{
			name:  "same email and own username are accepted",
			id:    "user-1",
			patch: domain.AccountPatch{Username: str("alice"), Email: str("alice@example.com")},
			validate: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, "alice", a.Username)
			},
		},
		{
			name:  "rename and promote",
			id:    "user-1",
			patch: domain.AccountPatch{Username: str("alicia"), Role: role("admin")},
			validate: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, "alicia", a.Username)
				assert.Equal(t, domain.RoleAdmin, a.Role)
			},
		},
		{
			name:  "new password is hashed",
			id:    "user-1",
			patch: domain.AccountPatch{Password: str("fresh")},
			validate: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, "hashed_fresh", a.PasswordHash)
			},
		},
		{
			name:  "stored hash is not hashed again",
			id:    "user-1",
			patch: domain.AccountPatch{Password: str("hashed_secret")},
			validate: func(t *testing.T, a *domain.Account) {
				assert.Equal(t, "hashed_secret", a.PasswordHash)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestUserService(t)
			addAccount(t, svc, "alice", "alice@example.com")
			addAccount(t, svc, "bob", "bob@example.com")

			res := svc.Update(ctx, tt.id, tt.patch)
			if tt.expectedMessage != "" {
				assert.False(t, res.Status)
				assert.Equal(t, tt.expectedMessage, res.Message)
				return
			}
			require.True(t, res.Status, res.Message)
			tt.validate(t, res.Data)

			reloaded := svc.GetByID(ctx, tt.id)
			require.True(t, reloaded.Status)
			tt.validate(t, reloaded.Data)
		})
	}
}

func TestUserService_StorageErrorsBecomeGeneric(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockCollection[domain.Account]()
	boom := errors.New("connection reset")
	store.FindOneFunc = func(ctx context.Context, filter domain.Filter) (*domain.Account, error) {
		return nil, boom
	}
	store.FindFunc = func(ctx context.Context, filter domain.Filter) ([]domain.Account, error) {
		return nil, boom
	}
	svc := NewUserService(store, mocks.NewMockPasswordService(), nil, zap.NewNop())

	assert.Equal(t, domain.MsgGeneric, svc.GetByUsername(ctx, "alice").Message)
	assert.Equal(t, domain.MsgGeneric, svc.List(ctx).Message)
	assert.Equal(t, domain.MsgGeneric, svc.Add(ctx, domain.AccountDraft{Username: "a", Email: "a@b.c"}).Message)
}

func TestUserService_CreateFailure(t *testing.T) {
	store := mocks.NewMockCollection[domain.Account]()
	store.CreateFunc = func(ctx context.Context, doc *domain.Account) (*domain.Account, error) {
		return nil, errors.New("disk full")
	}
	svc := NewUserService(store, mocks.NewMockPasswordService(), nil, zap.NewNop())

	res := svc.Add(context.Background(), domain.AccountDraft{Username: "a", Email: "a@b.c", Password: "pw"})
	assert.False(t, res.Status)
	assert.Equal(t, domain.MsgGeneric, res.Message)
}
