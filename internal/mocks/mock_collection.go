package mocks

import (
	"context"

	"github.com/you/blogsvc/domain"
)

// MockCollection implements domain.Collection for testing. Without a func
// override every lookup finds nothing and every write echoes its input.
type MockCollection[T domain.Document] struct {
	FindFunc             func(ctx context.Context, filter domain.Filter) ([]T, error)
	FindOneFunc          func(ctx context.Context, filter domain.Filter) (*T, error)
	FindByIDFunc         func(ctx context.Context, id string) (*T, error)
	CreateFunc           func(ctx context.Context, doc *T) (*T, error)
	FindOneAndUpdateFunc func(ctx context.Context, filter domain.Filter, patch domain.Patch) (*T, error)
	FindOneAndDeleteFunc func(ctx context.Context, filter domain.Filter) (*T, error)
}

// NewMockCollection creates a new MockCollection with default behaviors
func NewMockCollection[T domain.Document]() *MockCollection[T] {
	return &MockCollection[T]{}
}

// Find returns documents matching filter
func (m *MockCollection[T]) Find(ctx context.Context, filter domain.Filter) ([]T, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, nil
}

// FindOne returns the first document matching filter
func (m *MockCollection[T]) FindOne(ctx context.Context, filter domain.Filter) (*T, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(ctx, filter)
	}
	return nil, nil
}

// FindByID returns the document with the given id
func (m *MockCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

// Create stores a document
func (m *MockCollection[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	return doc, nil
}

// FindOneAndUpdate patches the first matching document
func (m *MockCollection[T]) FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*T, error) {
	if m.FindOneAndUpdateFunc != nil {
		return m.FindOneAndUpdateFunc(ctx, filter, patch)
	}
	return nil, nil
}

// FindOneAndDelete removes the first matching document
func (m *MockCollection[T]) FindOneAndDelete(ctx context.Context, filter domain.Filter) (*T, error) {
	if m.FindOneAndDeleteFunc != nil {
		return m.FindOneAndDeleteFunc(ctx, filter)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.AccountStore = (*MockCollection[domain.Account])(nil)
var _ domain.PostStore = (*MockCollection[domain.Post])(nil)
