package accounts

import (
	"context"
)

type Repository interface {
	// Initialized reports whether the user registry exists.
	Initialized(ctx context.Context) (bool, error)
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, user *User) error
	GetUserByName(ctx context.Context, name string) (*User, error)
	UpdateDatabases(ctx context.Context, user *User) error
	List(ctx context.Context) ([]string, error)
}
