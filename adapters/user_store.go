package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lightbridge/application"

	"github.com/google/uuid"
)

// SQLiteUserStore implements application.UserRepository on SQLite.
type SQLiteUserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

func (s *SQLiteUserStore) Create(ctx context.Context, user *application.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return application.ErrEmailTaken
		}
		return fmt.Errorf("creating user: %w", err)
	}

	for _, role := range user.Roles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`,
			user.ID, role.ID,
		); err != nil {
			return fmt.Errorf("assigning role %s: %w", role.Name, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteUserStore) GetByEmail(ctx context.Context, email string) (*application.User, error) {
	return s.getUser(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (s *SQLiteUserStore) GetByID(ctx context.Context, id string) (*application.User, error) {
	return s.getUser(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (s *SQLiteUserStore) getUser(ctx context.Context, query string, arg any) (*application.User, error) {
	var user application.User
	var createdAt string

	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	roles, err := s.userRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

func (s *SQLiteUserStore) userRoles(ctx context.Context, userID string) ([]application.Role, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.role_name, r.description
		 FROM roles r JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = ? ORDER BY r.role_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user roles: %w", err)
	}
	defer rows.Close()

	var roles []application.Role
	for rows.Next() {
		var role application.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

var _ application.UserRepository = &SQLiteUserStore{}
