package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles all post database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new post and returns the created record.
func (r *Repository) Create(ctx context.Context, p NewPost) (*Post, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO posts (title, description, tag, image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+postColumns,
		p.Title, p.Desc, p.Tag, p.ImageURL,
	)
	created, err := scanPost(row)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, fmt.Errorf("create post: %w: %w", ErrMissingField, err)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

// List returns one page of posts matching q together with the total match count.
// Both statements travel in a single batch.
func (r *Repository) List(ctx context.Context, q ListQuery) (*Page, error) {
	stmt := buildListStatement(q)

	batch := &pgx.Batch{}
	batch.Queue(stmt.countSQL, stmt.countArgs...)
	batch.Queue(stmt.rowsSQL, stmt.rowsArgs...)

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	page := &Page{}
	if err := br.QueryRow().Scan(&page.Count); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	rows, err := br.Query()
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	page.Rows, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}
	if page.Rows == nil {
		page.Rows = []Post{}
	}
	return page, nil
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Desc, &p.Tag, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// isConstraintViolation checks for PostgreSQL not_null_violation (23502) or
// check_violation (23514), the codes an incomplete post produces.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23502" || pgErr.Code == "23514")
}
