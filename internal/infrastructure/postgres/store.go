// Package postgres stores the course planner collections in PostgreSQL through pgx.
package postgres

import (
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db  DB
	pub event.Publisher
}

// NewStore wraps db. pub may be nil.
func NewStore(db DB, pub event.Publisher) *Store {
	return &Store{db: db, pub: pub}
}

func (s *Store) Users() repository.UserRepository                   { return &UserRepository{s} }
func (s *Store) Workspaces() repository.WorkspaceRepository         { return &WorkspaceRepository{s} }
func (s *Store) Categories() repository.CategoryRepository          { return &CategoryRepository{s} }
func (s *Store) Places() repository.PlaceRepository                 { return &PlaceRepository{s} }
func (s *Store) CategoryPlaces() repository.CategoryPlaceRepository { return &CategoryPlaceRepository{s} }
