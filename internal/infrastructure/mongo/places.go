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

type PlaceRepository struct {
	s *Store
	c *mongo.Collection
}

func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	if _, err := r.c.InsertOne(ctx, fromPlace(p)); err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Places, event.OpCreate, p.ID)
	return nil
}

func (r *PlaceRepository) findOne(ctx context.Context, filter bson.M) (*entity.Place, error) {
	var d placeDoc
	if err := r.c.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *PlaceRepository) GetByKakaoID(ctx context.Context, kakaoPlaceID string) (*entity.Place, error) {
	return r.findOne(ctx, bson.M{"kakao_place_id": kakaoPlaceID})
}

func (r *PlaceRepository) GetMany(ctx context.Context, ids []string) ([]*entity.Place, error) {
	out := []*entity.Place{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[string]*entity.Place, len(ids))
	for cur.Next(ctx) {
		var d placeDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		byID[d.ID] = d.entity()
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		event.Emit(ctx, r.s.pub, event.Places, event.OpDelete, id)
	}
	return nil
}

type CategoryPlaceRepository struct {
	s *Store
	c *mongo.Collection
}

func (r *CategoryPlaceRepository) Create(ctx context.Context, cp *entity.CategoryPlace) error {
	if _, err := r.c.InsertOne(ctx, fromLink(cp)); err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.CategoryPlaces, event.OpCreate, cp.ID)
	return nil
}

func (r *CategoryPlaceRepository) GetByPair(ctx context.Context, categoryID, placeID string) (*entity.CategoryPlace, error) {
	var d linkDoc
	if err := r.c.FindOne(ctx, bson.M{"category_id": categoryID, "place_id": placeID}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return d.entity(), nil
}

func (r *CategoryPlaceRepository) ListByCategory(ctx context.Context, categoryID string) ([]*entity.CategoryPlace, error) {
	cur, err := r.c.Find(ctx, bson.M{"category_id": categoryID}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*entity.CategoryPlace{}
	for cur.Next(ctx) {
		var d linkDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.entity())
	}
	return out, cur.Err()
}

func (r *CategoryPlaceRepository) CountByPlace(ctx context.Context, placeID string) (int, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{"place_id": placeID})
	return int(n), err
}

func (r *CategoryPlaceRepository) deleteMany(ctx context.Context, filter bson.M) (int, error) {
	res, err := r.c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	n := int(res.DeletedCount)
	if n > 0 {
		event.Emit(ctx, r.s.pub, event.CategoryPlaces, event.OpDelete, "")
	}
	return n, nil
}

func (r *CategoryPlaceRepository) DeleteByPair(ctx context.Context, categoryID, placeID string) (int, error) {
	return r.deleteMany(ctx, bson.M{"category_id": categoryID, "place_id": placeID})
}

func (r *CategoryPlaceRepository) DeleteByCategory(ctx context.Context, categoryID string) (int, error) {
	return r.deleteMany(ctx, bson.M{"category_id": categoryID})
}

var (
	_ repository.PlaceRepository         = (*PlaceRepository)(nil)
	_ repository.CategoryPlaceRepository = (*CategoryPlaceRepository)(nil)
)
