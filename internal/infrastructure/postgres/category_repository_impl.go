package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type CategoryRepository struct {
	s *Store
}

const categoryColumns = `id, workspace_id, name, color, sort_order, representative_place_id, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	if err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Color, &c.SortOrder, &c.RepresentativePlaceID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.s.db.Exec(ctx, `
		INSERT INTO categories (id, workspace_id, name, color, sort_order, representative_place_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.WorkspaceID, c.Name, c.Color, c.SortOrder, c.RepresentativePlaceID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Categories, event.OpCreate, c.ID)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.s.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.s.db.Exec(ctx, `
		UPDATE categories
		SET name = $1, color = $2, representative_place_id = $3, updated_at = $4
		WHERE id = $5
	`, c.Name, c.Color, c.RepresentativePlaceID, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	event.Emit(ctx, r.s.pub, event.Categories, event.OpUpdate, c.ID)
	return nil
}

func (r *CategoryRepository) UpdateSortOrder(ctx context.Context, id string, sortOrder int, updatedAt time.Time) error {
	res, err := r.s.db.Exec(ctx, `UPDATE categories SET sort_order = $1, updated_at = $2 WHERE id = $3`, sortOrder, updatedAt, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	event.Emit(ctx, r.s.pub, event.Categories, event.OpUpdate, id)
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		event.Emit(ctx, r.s.pub, event.Categories, event.OpDelete, id)
	}
	return nil
}

func (r *CategoryRepository) DeleteByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	res, err := r.s.db.Exec(ctx, `DELETE FROM categories WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return 0, err
	}
	n := int(res.RowsAffected())
	if n > 0 {
		event.Emit(ctx, r.s.pub, event.Categories, event.OpDelete, "")
	}
	return n, nil
}

func (r *CategoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entity.Category, error) {
	rows, err := r.s.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE workspace_id = $1
		ORDER BY sort_order, seq
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	var n int
	if err := r.s.db.QueryRow(ctx, `SELECT count(*) FROM categories WHERE workspace_id = $1`, workspaceID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
