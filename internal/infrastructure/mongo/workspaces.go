package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type WorkspaceRepository struct {
	s *Store
	c *mongo.Collection
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *entity.Workspace) error {
	if _, err := r.c.InsertOne(ctx, fromWorkspace(w)); err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Workspaces, event.OpCreate, w.ID)
	return nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	var d workspaceDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *entity.Workspace) error {
	res, err := r.c.UpdateByID(ctx, w.ID, bson.M{"$set": bson.M{
		"title":      w.Title,
		"headcount":  w.Headcount,
		"date":       w.Date,
		"updated_at": w.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	event.Emit(ctx, r.s.pub, event.Workspaces, event.OpUpdate, w.ID)
	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		event.Emit(ctx, r.s.pub, event.Workspaces, event.OpDelete, id)
	}
	return nil
}

func (r *WorkspaceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Workspace, error) {
	cur, err := r.c.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*entity.Workspace{}
	for cur.Next(ctx) {
		var d workspaceDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.entity())
	}
	return out, cur.Err()
}

var _ repository.WorkspaceRepository = (*WorkspaceRepository)(nil)
