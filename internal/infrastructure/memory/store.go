// Package memory provides the embedded, process-local document store: one map per collection
// plus the secondary indexes the lookups need.
package memory

import (
	"sort"
	"sync"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

type pairKey struct {
	categoryID string
	placeID    string
}

type Store struct {
	mu  sync.RWMutex
	pub event.Publisher

	users          map[string]*entity.User
	workspaces     map[string]*entity.Workspace
	categories     map[string]*entity.Category
	places         map[string]*entity.Place
	categoryPlaces map[string]*entity.CategoryPlace

	// secondary indexes
	userByEmail       map[string]string
	workspacesByOwner map[string]map[string]struct{}
	categoriesByWS    map[string]map[string]struct{}
	placeByKakaoID    map[string]string
	linkByPair        map[pairKey]string
	linksByCategory   map[string]map[string]struct{}
	linksByPlace      map[string]map[string]struct{}
	insertSeq         map[string]uint64
	seq               uint64
}

// New returns an empty store. pub may be nil.
func New(pub event.Publisher) *Store {
	return &Store{
		pub:               pub,
		users:             make(map[string]*entity.User),
		workspaces:        make(map[string]*entity.Workspace),
		categories:        make(map[string]*entity.Category),
		places:            make(map[string]*entity.Place),
		categoryPlaces:    make(map[string]*entity.CategoryPlace),
		userByEmail:       make(map[string]string),
		workspacesByOwner: make(map[string]map[string]struct{}),
		categoriesByWS:    make(map[string]map[string]struct{}),
		placeByKakaoID:    make(map[string]string),
		linkByPair:        make(map[pairKey]string),
		linksByCategory:   make(map[string]map[string]struct{}),
		linksByPlace:      make(map[string]map[string]struct{}),
		insertSeq:         make(map[string]uint64),
	}
}

func (s *Store) Users() repository.UserRepository                   { return userRepo{s} }
func (s *Store) Workspaces() repository.WorkspaceRepository         { return workspaceRepo{s} }
func (s *Store) Categories() repository.CategoryRepository          { return categoryRepo{s} }
func (s *Store) Places() repository.PlaceRepository                 { return placeRepo{s} }
func (s *Store) CategoryPlaces() repository.CategoryPlaceRepository { return categoryPlaceRepo{s} }

// stamp records insertion order so listings follow storage order like the other backends.
// Caller holds the write lock.
func (s *Store) stamp(id string) {
	s.seq++
	s.insertSeq[id] = s.seq
}

func (s *Store) sortByInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.insertSeq[ids[i]] < s.insertSeq[ids[j]] })
}

func addToSet(idx map[string]map[string]struct{}, key, id string) {
	set, ok := idx[key]
	if !ok {
		set = make(map[string]struct{})
		idx[key] = set
	}
	set[id] = struct{}{}
}

func removeFromSet(idx map[string]map[string]struct{}, key, id string) {
	set, ok := idx[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx, key)
	}
}

func setKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
