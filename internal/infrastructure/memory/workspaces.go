package memory

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type workspaceRepo struct{ s *Store }

func (r workspaceRepo) Create(ctx context.Context, w *entity.Workspace) error {
	s := r.s
	s.mu.Lock()
	if _, ok := s.workspaces[w.ID]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	cp := *w
	s.workspaces[w.ID] = &cp
	addToSet(s.workspacesByOwner, w.OwnerID, w.ID)
	s.stamp(w.ID)
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Workspaces, event.OpCreate, w.ID)
	return nil
}

func (r workspaceRepo) GetByID(_ context.Context, id string) (*entity.Workspace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.workspaces[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r workspaceRepo) Update(ctx context.Context, w *entity.Workspace) error {
	s := r.s
	s.mu.Lock()
	cur, ok := s.workspaces[w.ID]
	if !ok {
		s.mu.Unlock()
		return repository.ErrNotFound
	}
	cur.Title = w.Title
	cur.Headcount = w.Headcount
	cur.Date = w.Date
	cur.UpdatedAt = w.UpdatedAt
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Workspaces, event.OpUpdate, w.ID)
	return nil
}

func (r workspaceRepo) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	w, ok := s.workspaces[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.workspaces, id)
	delete(s.insertSeq, id)
	removeFromSet(s.workspacesByOwner, w.OwnerID, id)
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Workspaces, event.OpDelete, id)
	return nil
}

func (r workspaceRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Workspace, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := setKeys(s.workspacesByOwner[ownerID])
	s.sortByInsertion(ids)
	out := make([]*entity.Workspace, 0, len(ids))
	for _, id := range ids {
		cp := *s.workspaces[id]
		out = append(out, &cp)
	}
	return out, nil
}
