package application

import (
	"context"
	"fmt"
	"time"
)

var (
	ErrEmailTaken   = fmt.Errorf("email already registered")
	ErrUserNotFound = fmt.Errorf("user not found")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
}

type Role struct {
	ID          string
	Name        string
	Description string
}

type Review struct {
	ID        string
	Author    string
	Text      string
	Rating    int
	CreatedAt time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByName(ctx context.Context, name string) (*Role, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	// List returns all reviews, newest first.
	List(ctx context.Context) ([]Review, error)
}
