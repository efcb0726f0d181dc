package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	repo "github.com/oksasatya/courseitda/internal/domain/repository"
)

type WorkspaceService struct {
	Store  repo.Store
	Index  PlaceIndex
	Logger *logrus.Logger
}

func NewWorkspaceService(store repo.Store, index PlaceIndex, logger *logrus.Logger) *WorkspaceService {
	return &WorkspaceService{Store: store, Index: index, Logger: logger}
}

type WorkspaceInput struct {
	OwnerID   string
	Title     string
	Headcount int
	Date      string
}

// WorkspacePatch carries the fields to change; nil fields are left untouched.
type WorkspacePatch struct {
	Title     *string
	Headcount *int
	Date      *string
}

func validateTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", validationError("title is required")
	}
	return t, nil
}

func validateHeadcount(n int) error {
	if n < 1 {
		return validationError("headcount must be at least 1")
	}
	return nil
}

func (s *WorkspaceService) Create(ctx context.Context, in WorkspaceInput) (*entity.Workspace, error) {
	if in.OwnerID == "" {
		return nil, validationError("owner is required")
	}
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateHeadcount(in.Headcount); err != nil {
		return nil, err
	}
	now := nowUTC()
	w := &entity.Workspace{
		ID:        uuid.NewString(),
		OwnerID:   in.OwnerID,
		Title:     title,
		Headcount: in.Headcount,
		Date:      in.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Workspaces().Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkspaceService) Get(ctx context.Context, id string) (*entity.Workspace, error) {
	w, err := s.Store.Workspaces().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("workspace not found")
		}
		return nil, err
	}
	return w, nil
}

func (s *WorkspaceService) Update(ctx context.Context, id string, patch WorkspacePatch) (*entity.Workspace, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		w.Title = title
	}
	if patch.Headcount != nil {
		if err := validateHeadcount(*patch.Headcount); err != nil {
			return nil, err
		}
		w.Headcount = *patch.Headcount
	}
	if patch.Date != nil {
		w.Date = *patch.Date
	}
	w.UpdatedAt = nowUTC()
	if err := s.Store.Workspaces().Update(ctx, w); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundError("workspace not found")
		}
		return nil, err
	}
	return w, nil
}

// Delete removes the links of every category, the categories, then the workspace.
// Places left without any link are removed afterwards. The steps are independent writes;
// a failure stops the sequence and leaves what was not yet deleted.
func (s *WorkspaceService) Delete(ctx context.Context, id string) error {
	if _, err := s.Store.Workspaces().GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}

	cats, err := s.Store.Categories().ListByWorkspace(ctx, id)
	if err != nil {
		return err
	}
	var placeIDs []string
	for _, c := range cats {
		links, err := s.Store.CategoryPlaces().ListByCategory(ctx, c.ID)
		if err != nil {
			return err
		}
		for _, l := range links {
			placeIDs = append(placeIDs, l.PlaceID)
		}
		if _, err := s.Store.CategoryPlaces().DeleteByCategory(ctx, c.ID); err != nil {
			return err
		}
	}
	if _, err := s.Store.Categories().DeleteByWorkspace(ctx, id); err != nil {
		return err
	}
	if err := s.Store.Workspaces().Delete(ctx, id); err != nil {
		return err
	}
	return collectOrphanPlaces(ctx, s.Store, s.Index, s.Logger, placeIDs)
}

func (s *WorkspaceService) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Workspace, error) {
	return s.Store.Workspaces().ListByOwner(ctx, ownerID)
}

// collectOrphanPlaces deletes every place in ids that no category links anymore.
func collectOrphanPlaces(ctx context.Context, store repo.Store, index PlaceIndex, logger *logrus.Logger, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := deletePlaceIfUnlinked(ctx, store, index, logger, id); err != nil {
			return err
		}
	}
	return nil
}

func deletePlaceIfUnlinked(ctx context.Context, store repo.Store, index PlaceIndex, logger *logrus.Logger, placeID string) error {
	n, err := store.CategoryPlaces().CountByPlace(ctx, placeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if err := store.Places().Delete(ctx, placeID); err != nil {
		return err
	}
	if index != nil {
		if err := index.DeletePlace(ctx, placeID); err != nil && logger != nil {
			logger.WithError(err).WithField("place_id", placeID).Warn("remove place from index failed")
		}
	}
	return nil
}
