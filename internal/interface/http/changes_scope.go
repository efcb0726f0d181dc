package handlers

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

// changeScope limits a change stream to what one user owns. It lives for a single
// stream and is only touched from that stream's goroutine.
type changeScope struct {
	store      repository.Store
	userID     string
	workspaces map[string]bool
	categories map[string]bool
}

// newChangeScope remembers the user's current workspaces and categories, so deletes of
// records that can no longer be looked up are still delivered.
func newChangeScope(ctx context.Context, store repository.Store, userID string) (*changeScope, error) {
	s := &changeScope{
		store:      store,
		userID:     userID,
		workspaces: map[string]bool{},
		categories: map[string]bool{},
	}
	wss, err := store.Workspaces().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, w := range wss {
		s.workspaces[w.ID] = true
		cats, err := store.Categories().ListByWorkspace(ctx, w.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range cats {
			s.categories[c.ID] = true
		}
	}
	return s, nil
}

// filter returns the change as the user may see it, or false when it must be dropped.
// Places are a catalog shared by every user. Links cannot be traced back to an owner
// by id, so their id is removed and subscribers re-fetch.
func (s *changeScope) filter(ctx context.Context, c event.Change) (event.Change, bool) {
	if c.ID == "" {
		return c, true
	}
	switch c.Collection {
	case event.Users:
		return c, c.ID == s.userID
	case event.Workspaces:
		return c, s.track(s.workspaces, c, func() bool { return s.ownsWorkspace(ctx, c.ID) })
	case event.Categories:
		return c, s.track(s.categories, c, func() bool {
			cat, err := s.store.Categories().GetByID(ctx, c.ID)
			return err == nil && s.ownsWorkspace(ctx, cat.WorkspaceID)
		})
	case event.CategoryPlaces:
		c.ID = ""
		return c, true
	}
	return c, true
}

func (s *changeScope) track(known map[string]bool, c event.Change, owned func() bool) bool {
	if c.Op == event.OpDelete {
		ok := known[c.ID]
		delete(known, c.ID)
		return ok
	}
	if known[c.ID] {
		return true
	}
	if owned() {
		known[c.ID] = true
		return true
	}
	return false
}

func (s *changeScope) ownsWorkspace(ctx context.Context, id string) bool {
	if s.workspaces[id] {
		return true
	}
	w, err := s.store.Workspaces().GetByID(ctx, id)
	if err != nil || w.OwnerID != s.userID {
		return false
	}
	s.workspaces[id] = true
	return true
}
