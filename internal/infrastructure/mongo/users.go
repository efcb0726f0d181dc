package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type UserRepository struct {
	s *Store
	c *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.c.InsertOne(ctx, fromUser(u)); err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Users, event.OpCreate, u.ID)
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var d userDoc
	if err := r.c.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{})
	return int(n), err
}

var _ repository.UserRepository = (*UserRepository)(nil)
