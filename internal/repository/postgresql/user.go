package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository"
)

// UserRepo stores back-office accounts used for basic auth.
type UserRepo struct {
	db db.DB
}

func NewUserRepo(db db.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser creates the account with a bcrypt hash unless the username is taken.
func (r *UserRepo) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
        INSERT INTO users (username, password) VALUES ($1, $2)
        ON CONFLICT (username) DO NOTHING
    `, username, string(hashed))
	if err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepo) ValidateUser(ctx context.Context, username, password string) (bool, error) {
	var user repository.User
	err := r.db.Get(ctx, &user, "SELECT id, username, password FROM users WHERE username = $1", username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load user %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
