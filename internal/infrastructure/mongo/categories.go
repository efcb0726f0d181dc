package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type CategoryRepository struct {
	s *Store
	c *mongo.Collection
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	if _, err := r.c.InsertOne(ctx, fromCategory(c)); err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Categories, event.OpCreate, c.ID)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var d categoryDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *CategoryRepository) set(ctx context.Context, id string, fields bson.M) error {
	res, err := r.c.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	event.Emit(ctx, r.s.pub, event.Categories, event.OpUpdate, id)
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	return r.set(ctx, c.ID, bson.M{
		"name":                    c.Name,
		"color":                   c.Color,
		"representative_place_id": c.RepresentativePlaceID,
		"updated_at":              c.UpdatedAt,
	})
}

func (r *CategoryRepository) UpdateSortOrder(ctx context.Context, id string, sortOrder int, updatedAt time.Time) error {
	return r.set(ctx, id, bson.M{"sort_order": sortOrder, "updated_at": updatedAt})
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		event.Emit(ctx, r.s.pub, event.Categories, event.OpDelete, id)
	}
	return nil
}

func (r *CategoryRepository) DeleteByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"workspace_id": workspaceID})
	if err != nil {
		return 0, err
	}
	n := int(res.DeletedCount)
	if n > 0 {
		event.Emit(ctx, r.s.pub, event.Categories, event.OpDelete, "")
	}
	return n, nil
}

func (r *CategoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "seq", Value: 1}})
	cur, err := r.c.Find(ctx, bson.M{"workspace_id": workspaceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*entity.Category{}
	for cur.Next(ctx) {
		var d categoryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.entity())
	}
	return out, cur.Err()
}

func (r *CategoryRepository) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{"workspace_id": workspaceID})
	return int(n), err
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
