package repository

import (
	"context"
	"time"

	"github.com/oksasatya/courseitda/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// Update persists name, color, representative place and updated_at.
	Update(ctx context.Context, c *entity.Category) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByWorkspace(ctx context.Context, workspaceID string) (int, error)
	// ListByWorkspace returns categories ordered by SortOrder.
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Category, error)
	CountByWorkspace(ctx context.Context, workspaceID string) (int, error)
}
