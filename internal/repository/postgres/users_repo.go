package postgres

import (
	"context"

	"github.com/baharkarakas/forohub/internal/models"
	"github.com/google/uuid"
)

type usersRepo struct{ db querier }

const userColumns = `id, name, email, password_hash, created_at`

func (r *usersRepo) Create(ctx context.Context, name, email, hash string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(id, name, email, password_hash) VALUES($1,$2,$3,$4)
		 RETURNING `+userColumns,
		uuid.NewString(), name, email, hash,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, mapErr(err)
}
