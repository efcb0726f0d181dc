package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type PlaceRepository struct {
	s *Store
}

const placeColumns = `id, kakao_place_id, name, address, road_address, lat, lng, phone, url, created_at`

func scanPlace(row pgx.Row) (*entity.Place, error) {
	p := &entity.Place{}
	if err := row.Scan(&p.ID, &p.KakaoPlaceID, &p.Name, &p.Address, &p.RoadAddress, &p.Lat, &p.Lng, &p.Phone, &p.URL, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlaceRepository) Create(ctx context.Context, p *entity.Place) error {
	_, err := r.s.db.Exec(ctx, `
		INSERT INTO places (id, kakao_place_id, name, address, road_address, lat, lng, phone, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.KakaoPlaceID, p.Name, p.Address, p.RoadAddress, p.Lat, p.Lng, p.Phone, p.URL, p.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Places, event.OpCreate, p.ID)
	return nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (*entity.Place, error) {
	p, err := scanPlace(r.s.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *PlaceRepository) GetByKakaoID(ctx context.Context, kakaoPlaceID string) (*entity.Place, error) {
	p, err := scanPlace(r.s.db.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE kakao_place_id = $1`, kakaoPlaceID))
	if err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

func (r *PlaceRepository) GetMany(ctx context.Context, ids []string) ([]*entity.Place, error) {
	out := []*entity.Place{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.s.db.Query(ctx, `SELECT `+placeColumns+` FROM places WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*entity.Place, len(ids))
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
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
	res, err := r.s.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		event.Emit(ctx, r.s.pub, event.Places, event.OpDelete, id)
	}
	return nil
}

type CategoryPlaceRepository struct {
	s *Store
}

const linkColumns = `id, category_id, place_id, created_at`

func scanLink(row pgx.Row) (*entity.CategoryPlace, error) {
	cp := &entity.CategoryPlace{}
	if err := row.Scan(&cp.ID, &cp.CategoryID, &cp.PlaceID, &cp.CreatedAt); err != nil {
		return nil, err
	}
	return cp, nil
}

func (r *CategoryPlaceRepository) Create(ctx context.Context, cp *entity.CategoryPlace) error {
	_, err := r.s.db.Exec(ctx, `
		INSERT INTO category_places (id, category_id, place_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, cp.ID, cp.CategoryID, cp.PlaceID, cp.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.CategoryPlaces, event.OpCreate, cp.ID)
	return nil
}

func (r *CategoryPlaceRepository) GetByPair(ctx context.Context, categoryID, placeID string) (*entity.CategoryPlace, error) {
	cp, err := scanLink(r.s.db.QueryRow(ctx, `
		SELECT `+linkColumns+` FROM category_places WHERE category_id = $1 AND place_id = $2
	`, categoryID, placeID))
	if err != nil {
		return nil, mapErr(err)
	}
	return cp, nil
}

func (r *CategoryPlaceRepository) ListByCategory(ctx context.Context, categoryID string) ([]*entity.CategoryPlace, error) {
	rows, err := r.s.db.Query(ctx, `SELECT `+linkColumns+` FROM category_places WHERE category_id = $1 ORDER BY seq`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.CategoryPlace{}
	for rows.Next() {
		cp, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *CategoryPlaceRepository) CountByPlace(ctx context.Context, placeID string) (int, error) {
	var n int
	if err := r.s.db.QueryRow(ctx, `SELECT count(*) FROM category_places WHERE place_id = $1`, placeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *CategoryPlaceRepository) DeleteByPair(ctx context.Context, categoryID, placeID string) (int, error) {
	res, err := r.s.db.Exec(ctx, `DELETE FROM category_places WHERE category_id = $1 AND place_id = $2`, categoryID, placeID)
	if err != nil {
		return 0, err
	}
	n := int(res.RowsAffected())
	if n > 0 {
		event.Emit(ctx, r.s.pub, event.CategoryPlaces, event.OpDelete, "")
	}
	return n, nil
}

func (r *CategoryPlaceRepository) DeleteByCategory(ctx context.Context, categoryID string) (int, error) {
	res, err := r.s.db.Exec(ctx, `DELETE FROM category_places WHERE category_id = $1`, categoryID)
	if err != nil {
		return 0, err
	}
	n := int(res.RowsAffected())
	if n > 0 {
		event.Emit(ctx, r.s.pub, event.CategoryPlaces, event.OpDelete, "")
	}
	return n, nil
}

var (
	_ repository.PlaceRepository         = (*PlaceRepository)(nil)
	_ repository.CategoryPlaceRepository = (*CategoryPlaceRepository)(nil)
)
