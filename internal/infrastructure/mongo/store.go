// Package mongo stores the course planner collections as MongoDB documents.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

const (
	collUsers          = "users"
	collWorkspaces     = "workspaces"
	collCategories     = "categories"
	collPlaces         = "places"
	collCategoryPlaces = "category_places"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db  *mongo.Database
	pub event.Publisher
}

// NewStore wraps db. pub may be nil.
func NewStore(db *mongo.Database, pub event.Publisher) *Store {
	return &Store{db: db, pub: pub}
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepository{s: s, c: s.db.Collection(collUsers)}
}

func (s *Store) Workspaces() repository.WorkspaceRepository {
	return &WorkspaceRepository{s: s, c: s.db.Collection(collWorkspaces)}
}

func (s *Store) Categories() repository.CategoryRepository {
	return &CategoryRepository{s: s, c: s.db.Collection(collCategories)}
}

func (s *Store) Places() repository.PlaceRepository {
	return &PlaceRepository{s: s, c: s.db.Collection(collPlaces)}
}

func (s *Store) CategoryPlaces() repository.CategoryPlaceRepository {
	return &CategoryPlaceRepository{s: s, c: s.db.Collection(collCategoryPlaces)}
}

// newSeq returns an insertion marker. ObjectIDs from one process increase monotonically,
// so sorting on it keeps storage order.
func newSeq() primitive.ObjectID {
	return primitive.NewObjectID()
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case isDuplicateKeyErr(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
