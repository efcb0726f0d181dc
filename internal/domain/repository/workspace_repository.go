package repository

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/entity"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, w *entity.Workspace) error
	GetByID(ctx context.Context, id string) (*entity.Workspace, error)
	Update(ctx context.Context, w *entity.Workspace) error
	// Delete removes the workspace only; callers cascade.
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Workspace, error)
}
