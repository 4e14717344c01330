package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lightbridge/application"

	"github.com/google/uuid"
)

// SQLiteReviewStore implements application.ReviewRepository on SQLite.
type SQLiteReviewStore struct {
	db *sql.DB
}

func NewReviewStore(db *sql.DB) *SQLiteReviewStore {
	return &SQLiteReviewStore{db: db}
}

func (s *SQLiteReviewStore) Create(ctx context.Context, review *application.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, author, text, rating, created_at) VALUES (?, ?, ?, ?, ?)`,
		review.ID, review.Author, review.Text, review.Rating, review.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("creating review: %w", err)
	}
	return nil
}

func (s *SQLiteReviewStore) List(ctx context.Context) ([]application.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, author, text, rating, created_at FROM reviews ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []application.Review
	for rows.Next() {
		var review application.Review
		var createdAt string
		if err := rows.Scan(&review.ID, &review.Author, &review.Text, &review.Rating, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		review.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

var _ application.ReviewRepository = &SQLiteReviewStore{}
