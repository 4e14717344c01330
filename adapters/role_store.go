package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lightbridge/application"

	"github.com/google/uuid"
)

// SQLiteRoleStore implements application.RoleRepository on SQLite.
type SQLiteRoleStore struct {
	db *sql.DB
}

func NewRoleStore(db *sql.DB) *SQLiteRoleStore {
	return &SQLiteRoleStore{db: db}
}

func (s *SQLiteRoleStore) Create(ctx context.Context, role *application.Role) error {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO roles (id, role_name, description) VALUES (?, ?, ?)`,
		role.ID, role.Name, role.Description,
	)
	if err != nil {
		return fmt.Errorf("creating role: %w", err)
	}
	return nil
}

func (s *SQLiteRoleStore) GetByName(ctx context.Context, name string) (*application.Role, error) {
	var role application.Role
	err := s.db.QueryRowContext(ctx,
		`SELECT id, role_name, description FROM roles WHERE role_name = ?`, name).
		Scan(&role.ID, &role.Name, &role.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading role: %w", err)
	}
	return &role, nil
}

var _ application.RoleRepository = &SQLiteRoleStore{}
