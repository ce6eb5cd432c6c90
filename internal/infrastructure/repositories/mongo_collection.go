package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/you/blogsvc/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names
const (
	AccountsCollection = "accounts"
	PostsCollection    = "posts"
)

// MongoCollection implements domain.Collection over a MongoDB collection
type MongoCollection[T domain.Document] struct {
	coll *mongo.Collection
}

// NewMongoCollection wraps a driver collection
func NewMongoCollection[T domain.Document](coll *mongo.Collection) *MongoCollection[T] {
	return &MongoCollection[T]{coll: coll}
}

// NewMongoAccountStore creates the document-backed account store
func NewMongoAccountStore(db *mongo.Database) domain.AccountStore {
	return NewMongoCollection[domain.Account](db.Collection(AccountsCollection))
}

// NewMongoPostStore creates the document-backed post store
func NewMongoPostStore(db *mongo.Database) domain.PostStore {
	return NewMongoCollection[domain.Post](db.Collection(PostsCollection))
}

// bsonField maps a domain field name to its document key
func bsonField(field string) string {
	if field == domain.FieldID {
		return "_id"
	}
	return field
}

// toBSON translates a filter into a query document
func toBSON(filter domain.Filter) (bson.D, error) {
	query := bson.D{}
	for _, c := range filter {
		switch c.Op {
		case domain.OpEq:
			query = append(query, bson.E{Key: bsonField(c.Field), Value: c.Value})
		case domain.OpNe:
			query = append(query, bson.E{Key: bsonField(c.Field), Value: bson.D{{Key: "$ne", Value: c.Value}}})
		default:
			return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedOp, c.Op)
		}
	}
	return query, nil
}

// toSet translates a patch into a $set update document
func toSet(patch domain.Patch) bson.D {
	set := bson.D{}
	for field, value := range patch {
		set = append(set, bson.E{Key: bsonField(field), Value: value})
	}
	return bson.D{{Key: "$set", Value: set}}
}

// Find implements domain.Collection
func (r *MongoCollection[T]) Find(ctx context.Context, filter domain.Filter) ([]T, error) {
	query, err := toBSON(filter)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindOne implements domain.Collection
func (r *MongoCollection[T]) FindOne(ctx context.Context, filter domain.Filter) (*T, error) {
	query, err := toBSON(filter)
	if err != nil {
		return nil, err
	}
	return decodeSingle[T](r.coll.FindOne(ctx, query))
}

// FindByID implements domain.Collection
func (r *MongoCollection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return decodeSingle[T](r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}))
}

// Create implements domain.Collection
func (r *MongoCollection[T]) Create(ctx context.Context, doc *T) (*T, error) {
	if (*doc).DocumentID() == "" {
		return nil, domain.ErrEmptyDocumentID
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FindOneAndUpdate implements domain.Collection. It returns the document as it
// is after the update.
func (r *MongoCollection[T]) FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*T, error) {
	query, err := toBSON(filter)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return r.FindOne(ctx, filter)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeSingle[T](r.coll.FindOneAndUpdate(ctx, query, toSet(patch), opts))
}

// FindOneAndDelete implements domain.Collection. It returns the removed document.
func (r *MongoCollection[T]) FindOneAndDelete(ctx context.Context, filter domain.Filter) (*T, error) {
	query, err := toBSON(filter)
	if err != nil {
		return nil, err
	}
	return decodeSingle[T](r.coll.FindOneAndDelete(ctx, query))
}

func decodeSingle[T any](res *mongo.SingleResult) (*T, error) {
	var doc T
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

var (
	_ domain.AccountStore = (*MongoCollection[domain.Account])(nil)
	_ domain.PostStore    = (*MongoCollection[domain.Post])(nil)
)
