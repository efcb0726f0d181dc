package memory

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type placeRepo struct{ s *Store }

func (r placeRepo) Create(ctx context.Context, p *entity.Place) error {
	s := r.s
	s.mu.Lock()
	if _, ok := s.places[p.ID]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	if _, ok := s.placeByKakaoID[p.KakaoPlaceID]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	cp := *p
	s.places[p.ID] = &cp
	s.placeByKakaoID[p.KakaoPlaceID] = p.ID
	s.stamp(p.ID)
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Places, event.OpCreate, p.ID)
	return nil
}

func (r placeRepo) GetByID(_ context.Context, id string) (*entity.Place, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.places[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r placeRepo) GetByKakaoID(ctx context.Context, kakaoPlaceID string) (*entity.Place, error) {
	r.s.mu.RLock()
	id, ok := r.s.placeByKakaoID[kakaoPlaceID]
	r.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r placeRepo) GetMany(_ context.Context, ids []string) ([]*entity.Place, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Place, 0, len(ids))
	for _, id := range ids {
		p, ok := r.s.places[id]
		if !ok {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r placeRepo) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	p, ok := s.places[id]
	if ok {
		delete(s.places, id)
		delete(s.insertSeq, id)
		delete(s.placeByKakaoID, p.KakaoPlaceID)
	}
	s.mu.Unlock()

	if ok {
		event.Emit(ctx, s.pub, event.Places, event.OpDelete, id)
	}
	return nil
}

type categoryPlaceRepo struct{ s *Store }

func (r categoryPlaceRepo) Create(ctx context.Context, cp *entity.CategoryPlace) error {
	s := r.s
	key := pairKey{categoryID: cp.CategoryID, placeID: cp.PlaceID}
	s.mu.Lock()
	if _, ok := s.categoryPlaces[cp.ID]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	if _, ok := s.linkByPair[key]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	row := *cp
	s.categoryPlaces[cp.ID] = &row
	s.linkByPair[key] = cp.ID
	addToSet(s.linksByCategory, cp.CategoryID, cp.ID)
	addToSet(s.linksByPlace, cp.PlaceID, cp.ID)
	s.stamp(cp.ID)
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.CategoryPlaces, event.OpCreate, cp.ID)
	return nil
}

func (r categoryPlaceRepo) GetByPair(_ context.Context, categoryID, placeID string) (*entity.CategoryPlace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.linkByPair[pairKey{categoryID: categoryID, placeID: placeID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row := *r.s.categoryPlaces[id]
	return &row, nil
}

func (r categoryPlaceRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.CategoryPlace, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := setKeys(s.linksByCategory[categoryID])
	s.sortByInsertion(ids)
	out := make([]*entity.CategoryPlace, 0, len(ids))
	for _, id := range ids {
		row := *s.categoryPlaces[id]
		out = append(out, &row)
	}
	return out, nil
}

func (r categoryPlaceRepo) CountByPlace(_ context.Context, placeID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.linksByPlace[placeID]), nil
}

func (r categoryPlaceRepo) DeleteByPair(ctx context.Context, categoryID, placeID string) (int, error) {
	s := r.s
	s.mu.Lock()
	id, ok := s.linkByPair[pairKey{categoryID: categoryID, placeID: placeID}]
	if ok {
		s.deleteLinkLocked(id)
	}
	s.mu.Unlock()

	if !ok {
		return 0, nil
	}
	event.Emit(ctx, s.pub, event.CategoryPlaces, event.OpDelete, id)
	return 1, nil
}

func (r categoryPlaceRepo) DeleteByCategory(ctx context.Context, categoryID string) (int, error) {
	s := r.s
	s.mu.Lock()
	ids := setKeys(s.linksByCategory[categoryID])
	for _, id := range ids {
		s.deleteLinkLocked(id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		event.Emit(ctx, s.pub, event.CategoryPlaces, event.OpDelete, id)
	}
	return len(ids), nil
}

func (s *Store) deleteLinkLocked(id string) {
	row, ok := s.categoryPlaces[id]
	if !ok {
		return
	}
	delete(s.categoryPlaces, id)
	delete(s.insertSeq, id)
	delete(s.linkByPair, pairKey{categoryID: row.CategoryID, placeID: row.PlaceID})
	removeFromSet(s.linksByCategory, row.CategoryID, id)
	removeFromSet(s.linksByPlace, row.PlaceID, id)
}
