package domain

import "context"

// Operator is a comparison used in a filter condition
type Operator string

const (
	OpEq Operator = "eq"
	OpNe Operator = "ne"
)

// Condition compares one document field with a value
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Filter is a conjunction of conditions
type Filter []Condition

// Eq matches documents whose field equals value
func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// Ne matches documents whose field differs from value
func Ne(field string, value any) Condition {
	return Condition{Field: field, Op: OpNe, Value: value}
}

// Where builds a filter from conditions
func Where(conds ...Condition) Filter { return Filter(conds) }

// Patch maps field names to their new values
type Patch map[string]any

// Document is anything a Collection can store
type Document interface {
	DocumentID() string
}

// Collection is the persistence collaborator. Lookups return (nil, nil) when
// nothing matches.
type Collection[T Document] interface {
	Find(ctx context.Context, filter Filter) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) (*T, error)
	FindOneAndUpdate(ctx context.Context, filter Filter, patch Patch) (*T, error)
	FindOneAndDelete(ctx context.Context, filter Filter) (*T, error)
}

// AccountStore persists accounts
type AccountStore = Collection[Account]

// PostStore persists posts
type PostStore = Collection[Post]
