package repository

import (
	"context"

	"skill-exchange/internal/domain/user"
)

// UserDirectory exposes a user repository as the read-only view the match
// engine scans.
type UserDirectory struct {
	users user.Repository
}

func NewUserDirectory(users user.Repository) *UserDirectory {
	return &UserDirectory{users: users}
}

func (d *UserDirectory) GetUser(ctx context.Context, id int64) (user.User, error) {
	return d.users.GetByID(ctx, id)
}

func (d *UserDirectory) ListUsersExcluding(ctx context.Context, id int64) ([]user.User, error) {
	return d.users.ListExcluding(ctx, id)
}
