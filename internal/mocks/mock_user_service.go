package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockUserService implements domain.UserService interface for testing.
// Lookups fail with "User not exits" unless overridden.
type MockUserService struct {
	GetByUsernameFunc func(ctx context.Context, username string) domain.DataResult[*domain.Account]
	GetByEmailFunc    func(ctx context.Context, email string) domain.DataResult[*domain.Account]
	GetByIDFunc       func(ctx context.Context, id string) domain.DataResult[*domain.Account]
	ListFunc          func(ctx context.Context) domain.DataResult[[]domain.Account]
	AddFunc           func(ctx context.Context, draft domain.AccountDraft) domain.DataResult[*domain.Account]
	ActivateFunc      func(ctx context.Context, id string) domain.DataResult[*domain.Account]
	SuspendFunc       func(ctx context.Context, id string) domain.DataResult[*domain.Account]
	UpdateFunc        func(ctx context.Context, id string, patch domain.AccountPatch) domain.DataResult[*domain.Account]
	DeleteFunc        func(ctx context.Context, id string) domain.DataResult[*domain.Account]
	PurgeFunc         func(ctx context.Context, id string) domain.DataResult[*domain.Account]
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func notExists() domain.DataResult[*domain.Account] {
	return domain.FailureData[*domain.Account](domain.MsgUserNotExists)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) domain.DataResult[*domain.Account] {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return notExists()
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) domain.DataResult[*domain.Account] {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return notExists()
}

func (m *MockUserService) GetByID(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return notExists()
}

func (m *MockUserService) List(ctx context.Context) domain.DataResult[[]domain.Account] {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return domain.SuccessData([]domain.Account{})
}

// Add creates an account from the draft
func (m *MockUserService) Add(ctx context.Context, draft domain.AccountDraft) domain.DataResult[*domain.Account] {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, draft)
	}
	// Default behavior: echo the draft as a PASSIVE user
	return domain.SuccessData(&domain.Account{
		ID:           "mock-id",
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: "hashed_" + draft.Password,
		Status:       domain.StatusPassive,
		Role:         domain.RoleUser,
	})
}

func (m *MockUserService) Activate(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, id)
	}
	return domain.SuccessData(&domain.Account{ID: id, Status: domain.StatusActive})
}

func (m *MockUserService) Suspend(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	if m.SuspendFunc != nil {
		return m.SuspendFunc(ctx, id)
	}
	return domain.SuccessData(&domain.Account{ID: id, Status: domain.StatusSuspended})
}

func (m *MockUserService) Update(ctx context.Context, id string, patch domain.AccountPatch) domain.DataResult[*domain.Account] {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return domain.SuccessData(&domain.Account{ID: id})
}

func (m *MockUserService) Delete(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return domain.SuccessData(&domain.Account{ID: id, Status: domain.StatusDeleted})
}

func (m *MockUserService) Purge(ctx context.Context, id string) domain.DataResult[*domain.Account] {
	if m.PurgeFunc != nil {
		return m.PurgeFunc(ctx, id)
	}
	return domain.SuccessData(&domain.Account{ID: id})
}

// Compile-time interface compliance verification
var _ domain.UserService = (*MockUserService)(nil)
