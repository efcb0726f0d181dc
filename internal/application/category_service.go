package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	repo "github.com/oksasatya/courseitda/internal/domain/repository"
)

type CategoryService struct {
	Store  repo.Store
	Index  PlaceIndex
	Logger *logrus.Logger
}

func NewCategoryService(store repo.Store, index PlaceIndex, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Store: store, Index: index, Logger: logger}
}

type CategoryPatch struct {
	Name  *string
	Color *string
}

func (s *CategoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	c, err := s.Store.Categories().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("category not found")
		}
		return nil, err
	}
	return c, nil
}

// Add appends a category to the workspace. Its sort order and color follow the number of
// categories the workspace already has.
func (s *CategoryService) Add(ctx context.Context, workspaceID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("category name is required")
	}
	if _, err := s.Store.Workspaces().GetByID(ctx, workspaceID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("workspace not found")
		}
		return nil, err
	}
	n, err := s.Store.Categories().CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	now := nowUTC()
	c := &entity.Category{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       entity.CategoryColor(n),
		SortOrder:   n,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, patch CategoryPatch) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationError("category name is required")
		}
		c.Name = name
	}
	if patch.Color != nil {
		color := strings.TrimSpace(*patch.Color)
		if color == "" {
			return nil, validationError("color is required")
		}
		c.Color = color
	}
	return s.save(ctx, c)
}

func (s *CategoryService) save(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	c.UpdatedAt = nowUTC()
	if err := s.Store.Categories().Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("category not found")
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the category's links and then the category. Remaining categories keep
// their sort orders, gaps included.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	links, err := s.Store.CategoryPlaces().ListByCategory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.Store.CategoryPlaces().DeleteByCategory(ctx, id); err != nil {
		return err
	}
	if err := s.Store.Categories().Delete(ctx, id); err != nil {
		return err
	}
	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PlaceID)
	}
	return collectOrphanPlaces(ctx, s.Store, s.Index, s.Logger, ids)
}

// Reorder sets each category's sort order to its index in orderedIDs. The updates run
// concurrently; the first failure is returned and updates that already landed stay.
// orderedIDs need not list every category, but an id of another workspace fails the
// whole call before anything is written. Unknown ids surface from their own update.
func (s *CategoryService) Reorder(ctx context.Context, workspaceID string, orderedIDs []string) error {
	for _, id := range orderedIDs {
		c, err := s.Store.Categories().GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if c.WorkspaceID != workspaceID {
			return ForbiddenError("category " + id + " belongs to another workspace")
		}
	}

	now := nowUTC()
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range orderedIDs {
		g.Go(func() error {
			err := s.Store.Categories().UpdateSortOrder(gctx, id, i, now)
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("category not found: " + id)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("workspace_id", workspaceID).Warn("reorder categories failed")
		}
		return err
	}
	return nil
}

// SetRepresentative sets or, with a nil placeID, clears the category's representative place.
// The place must be linked to the category.
func (s *CategoryService) SetRepresentative(ctx context.Context, categoryID string, placeID *string) (*entity.Category, error) {
	c, err := s.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if placeID != nil {
		if _, err := s.Store.CategoryPlaces().GetByPair(ctx, categoryID, *placeID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, validationError("place not in category")
			}
			return nil, err
		}
		id := *placeID
		c.RepresentativePlaceID = &id
	} else {
		c.RepresentativePlaceID = nil
	}
	return s.save(ctx, c)
}

func (s *CategoryService) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Category, error) {
	return s.Store.Categories().ListByWorkspace(ctx, workspaceID)
}
