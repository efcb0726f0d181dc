package repository

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/entity"
)

type PlaceRepository interface {
	Create(ctx context.Context, p *entity.Place) error
	GetByID(ctx context.Context, id string) (*entity.Place, error)
	GetByKakaoID(ctx context.Context, kakaoPlaceID string) (*entity.Place, error)
	// GetMany returns the places found for ids, in the order of ids; unknown ids are skipped.
	GetMany(ctx context.Context, ids []string) ([]*entity.Place, error)
	Delete(ctx context.Context, id string) error
}

type CategoryPlaceRepository interface {
	Create(ctx context.Context, cp *entity.CategoryPlace) error
	GetByPair(ctx context.Context, categoryID, placeID string) (*entity.CategoryPlace, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.CategoryPlace, error)
	CountByPlace(ctx context.Context, placeID string) (int, error)
	DeleteByPair(ctx context.Context, categoryID, placeID string) (int, error)
	DeleteByCategory(ctx context.Context, categoryID string) (int, error)
}
