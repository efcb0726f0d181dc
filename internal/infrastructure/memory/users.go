package memory

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	if _, ok := s.users[u.ID]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	if _, ok := s.userByEmail[u.Email]; ok {
		s.mu.Unlock()
		return repository.ErrDuplicate
	}
	cp := *u
	s.users[u.ID] = &cp
	s.userByEmail[u.Email] = u.ID
	s.stamp(u.ID)
	s.mu.Unlock()

	event.Emit(ctx, s.pub, event.Users, event.OpCreate, u.ID)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.userByEmail[email]
	r.s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r userRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}
