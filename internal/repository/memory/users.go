package memory

import (
	"context"
	"time"

	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
	"github.com/google/uuid"
)

type usersRepo struct{ b binding }

func (r *usersRepo) Create(ctx context.Context, name, email, hash string) (models.User, error) {
	var u models.User
	err := r.b.with(ctx, func(st *state) error {
		if _, taken := st.emails[email]; taken {
			return repo.ErrDuplicate
		}
		u = models.User{
			ID:           uuid.NewString(),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		st.users[u.ID] = u
		st.emails[email] = u.ID
		return nil
	})
	return u, err
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.b.with(ctx, func(st *state) error {
		var ok bool
		if u, ok = st.users[id]; !ok {
			return repo.ErrNotFound
		}
		return nil
	})
	return u, err
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.b.with(ctx, func(st *state) error {
		id, ok := st.emails[email]
		if !ok {
			return repo.ErrNotFound
		}
		u = st.users[id]
		return nil
	})
	return u, err
}
