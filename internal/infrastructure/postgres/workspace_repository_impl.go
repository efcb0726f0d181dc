package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type WorkspaceRepository struct {
	s *Store
}

const workspaceColumns = `id, owner_id, title, headcount, date, created_at, updated_at`

func scanWorkspace(row pgx.Row) (*entity.Workspace, error) {
	w := &entity.Workspace{}
	if err := row.Scan(&w.ID, &w.OwnerID, &w.Title, &w.Headcount, &w.Date, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *entity.Workspace) error {
	_, err := r.s.db.Exec(ctx, `
		INSERT INTO workspaces (id, owner_id, title, headcount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, w.ID, w.OwnerID, w.Title, w.Headcount, w.Date, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Workspaces, event.OpCreate, w.ID)
	return nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	w, err := scanWorkspace(r.s.db.QueryRow(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return w, nil
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *entity.Workspace) error {
	res, err := r.s.db.Exec(ctx, `
		UPDATE workspaces
		SET title = $1, headcount = $2, date = $3, updated_at = $4
		WHERE id = $5
	`, w.Title, w.Headcount, w.Date, w.UpdatedAt, w.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	event.Emit(ctx, r.s.pub, event.Workspaces, event.OpUpdate, w.ID)
	return nil
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		event.Emit(ctx, r.s.pub, event.Workspaces, event.OpDelete, id)
	}
	return nil
}

func (r *WorkspaceRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Workspace, error) {
	rows, err := r.s.db.Query(ctx, `SELECT `+workspaceColumns+` FROM workspaces WHERE owner_id = $1 ORDER BY seq`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Workspace{}
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

var _ repository.WorkspaceRepository = (*WorkspaceRepository)(nil)
