package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type categoryRepo struct{ s *Store }

func cloneCategory(c *entity.Category) *entity.Category {
	cp := *c
	if c.RepresentativePlaceID != nil {
		id := *c.RepresentativePlaceID
		cp.RepresentativePlaceID = &id
	}
	return &cp
}

func (r categoryRepo) Create(ctx context.Context, c *entity.Category) error {
	s := r.s
	s.mu.Lock()
	if _, ok := s.categories[c.ID]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	s.categories[c.ID] = cloneCategory(c)
	addToSet(s.categoriesByWS, c.WorkspaceID, c.ID)
	s.stamp(c.ID)
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Categories, event.OpCreate, c.ID)
	return nil
}

func (r categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCategory(c), nil
}

func (r categoryRepo) Update(ctx context.Context, c *entity.Category) error {
	s := r.s
	s.mu.Lock()
	cur, ok := s.categories[c.ID]
	if !ok {
		s.mu.Unlock()
		return repository.ErrNotFound
	}
	next := cloneCategory(c)
	cur.Name = next.Name
	cur.Color = next.Color
	cur.RepresentativePlaceID = next.RepresentativePlaceID
	cur.UpdatedAt = next.UpdatedAt
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Categories, event.OpUpdate, c.ID)
	return nil
}

func (r categoryRepo) UpdateSortOrder(ctx context.Context, id string, sortOrder int, updatedAt time.Time) error {
	s := r.s
	s.mu.Lock()
	cur, ok := s.categories[id]
	if !ok {
		s.mu.Unlock()
		return repository.ErrNotFound
	}
	cur.SortOrder = sortOrder
	cur.UpdatedAt = updatedAt
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Categories, event.OpUpdate, id)
	return nil
}

func (r categoryRepo) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	removed := s.deleteCategoryLocked(id)
	s.mu.Unlock()

	if removed {
		event.Emit(ctx, s.pub, event.Categories, event.OpDelete, id)
	}
	return nil
}

func (r categoryRepo) DeleteByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	s := r.s
	s.mu.Lock()
	ids := setKeys(s.categoriesByWS[workspaceID])
	for _, id := range ids {
		s.deleteCategoryLocked(id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		event.Emit(ctx, s.pub, event.Categories, event.OpDelete, id)
	}
	return len(ids), nil
}

func (s *Store) deleteCategoryLocked(id string) bool {
	c, ok := s.categories[id]
	if !ok {
		return false
	}
	delete(s.categories, id)
	delete(s.insertSeq, id)
	removeFromSet(s.categoriesByWS, c.WorkspaceID, id)
	return true
}

func (r categoryRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]*entity.Category, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := setKeys(s.categoriesByWS[workspaceID])
	s.sortByInsertion(ids)
	out := make([]*entity.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneCategory(s.categories[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r categoryRepo) CountByWorkspace(_ context.Context, workspaceID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.categoriesByWS[workspaceID]), nil
}
