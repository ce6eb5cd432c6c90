package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/blogsvc/domain"
	"gorm.io/gorm"
)

// GormCollection implements domain.Collection over a SQL table using GORM
type GormCollection[T domain.Document] struct {
	db *gorm.DB
}

// NewGormCollection creates a collection bound to T's table
func NewGormCollection[T domain.Document](db *gorm.DB) *GormCollection[T] {
	return &GormCollection[T]{db: db}
}

// NewGormAccountStore creates the SQL-backed account store
func NewGormAccountStore(db *gorm.DB) domain.AccountStore {
	return NewGormCollection[domain.Account](db)
}

// NewGormPostStore creates the SQL-backed post store
func NewGormPostStore(db *gorm.DB) domain.PostStore {
	return NewGormCollection[domain.Post](db)
}

// where applies filter conditions. Field names come from domain constants,
// never from request input.
func where(q *gorm.DB, filter domain.Filter) (*gorm.DB, error) {
	for _, c := range filter {
		switch c.Op {
		case domain.OpEq:
			q = q.Where(fmt.Sprintf("%s = ?", c.Field), c.Value)
		case domain.OpNe:
			q = q.Where(fmt.Sprintf("%s <> ?", c.Field), c.Value)
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedOp, c.Op)
		}
	}
	return q, nil
}

// Find implements domain.Collection
func (r *GormCollection[T]) Find(ctx context.Context, filter domain.Filter) ([]T, error) {
	q, err := where(r.db.WithContext(ctx).Model(new(T)), filter)
	if err != nil {
		return nil, err
	}
	var docs []T
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOne implements domain.Collection
func (r *GormCollection[T]) FindOne(ctx context.Context, filter domain.Filter) (*T, error) {
	q, err := where(r.db.WithContext(ctx).Model(new(T)), filter)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := q.First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// FindByID implements domain.Collection
func (r *GormCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, domain.Where(domain.Eq(domain.FieldID, id)))
}

// Create implements domain.Collection
func (r *GormCollection[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if (*doc).DocumentID() == "" {
		return nil, domain.ErrEmptyDocumentID
	}
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// FindOneAndUpdate implements domain.Collection. It returns the document as it
// is after the update.
func (r *GormCollection[T]) FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*T, error) {
	var updated *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := NewGormCollection[T](tx).FindOne(ctx, filter)
		if err != nil || current == nil {
			return err
		}
		id := (*current).DocumentID()
		if len(patch) > 0 {
			res := tx.Model(new(T)).Where(fmt.Sprintf("%s = ?", domain.FieldID), id).Updates(map[string]any(patch))
			if res.Error != nil {
				return res.Error
			}
		}
		updated, err = NewGormCollection[T](tx).FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindOneAndDelete implements domain.Collection. It returns the removed document.
func (r *GormCollection[T]) FindOneAndDelete(ctx context.Context, filter domain.Filter) (*T, error) {
	var removed *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := NewGormCollection[T](tx).FindOne(ctx, filter)
		if err != nil || current == nil {
			return err
		}
		if err := tx.Where(fmt.Sprintf("%s = ?", domain.FieldID), (*current).DocumentID()).Delete(new(T)).Error; err != nil {
			return err
		}
		removed = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

var (
	_ domain.AccountStore = (*GormCollection[domain.Account])(nil)
	_ domain.PostStore    = (*GormCollection[domain.Post])(nil)
)
