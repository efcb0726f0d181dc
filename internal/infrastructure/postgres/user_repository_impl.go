package postgres

import (
	"context"

	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.s.db.Exec(ctx, `
		INSERT INTO users (id, nickname, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Nickname, u.Email, u.Password, u.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	event.Emit(ctx, r.s.pub, event.Users, event.OpCreate, u.ID)
	return nil
}

func (r *UserRepository) get(ctx context.Context, where string, arg string) (*entity.User, error) {
	u := &entity.User{}
	row := r.s.db.QueryRow(ctx, `
		SELECT id, nickname, email, password_hash, created_at
		FROM users
		WHERE `+where+` = $1
	`, arg)
	if err := row.Scan(&u.ID, &u.Nickname, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, "email", email)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.s.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
