package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockPostService implements domain.PostService interface for testing
type MockPostService struct {
	ListFunc        func(ctx context.Context, viewer *domain.TokenPayload) domain.DataResult[[]domain.Post]
	ListByOwnerFunc func(ctx context.Context, ownerID string, viewer *domain.TokenPayload) domain.DataResult[[]domain.Post]
	GetFunc         func(ctx context.Context, id string, viewer *domain.TokenPayload) domain.DataResult[*domain.Post]
	CreateFunc      func(ctx context.Context, actor *domain.TokenPayload, draft domain.PostDraft) domain.DataResult[*domain.Post]
	UpdateFunc      func(ctx context.Context, actor *domain.TokenPayload, id string, patch domain.PostPatch) domain.DataResult[*domain.Post]
	DeleteFunc      func(ctx context.Context, actor *domain.TokenPayload, id string) domain.Result
}

// NewMockPostService creates a new MockPostService with default behaviors
func NewMockPostService() *MockPostService {
	return &MockPostService{}
}

func (m *MockPostService) List(ctx context.Context, viewer *domain.TokenPayload) domain.DataResult[[]domain.Post] {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, viewer)
	}
	return domain.SuccessData([]domain.Post{})
}

func (m *MockPostService) ListByOwner(ctx context.Context, ownerID string, viewer *domain.TokenPayload) domain.DataResult[[]domain.Post] {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, viewer)
	}
	return domain.SuccessData([]domain.Post{})
}

func (m *MockPostService) Get(ctx context.Context, id string, viewer *domain.TokenPayload) domain.DataResult[*domain.Post] {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, viewer)
	}
	return domain.FailureData[*domain.Post](domain.MsgPostNotExists)
}

func (m *MockPostService) Create(ctx context.Context, actor *domain.TokenPayload, draft domain.PostDraft) domain.DataResult[*domain.Post] {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, draft)
	}
	return domain.SuccessData(&domain.Post{ID: "mock-post", OwnerID: actor.UserID, Title: draft.Title, Body: draft.Body, Published: draft.Published})
}

func (m *MockPostService) Update(ctx context.Context, actor *domain.TokenPayload, id string, patch domain.PostPatch) domain.DataResult[*domain.Post] {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, patch)
	}
	return domain.SuccessData(&domain.Post{ID: id, OwnerID: actor.UserID})
}

func (m *MockPostService) Delete(ctx context.Context, actor *domain.TokenPayload, id string) domain.Result {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return domain.Success(domain.MsgPostDeleted)
}

// Compile-time interface compliance verification
var _ domain.PostService = (*MockPostService)(nil)
