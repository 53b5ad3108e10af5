package post

import (
	"context"
	"fmt"
)

// Store persists and queries posts. *Repository is the Postgres implementation.
type Store interface {
	Create(ctx context.Context, p NewPost) (*Post, error)
	List(ctx context.Context, q ListQuery) (*Page, error)
}

// Service contains business logic for posts.
type Service struct {
	store Store
}

// NewService creates a new post Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create stores a post after checking every required field is present.
func (s *Service) Create(ctx context.Context, p NewPost) (*Post, error) {
	for _, f := range []struct{ name, value string }{
		{"title", p.Title},
		{"desc", p.Desc},
		{"tag", p.Tag},
		{"imageUrl", p.ImageURL},
	} {
		if f.value == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	created, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return created, nil
}

// List returns a page of posts. Zero Page, Limit and Sort take their defaults.
func (s *Service) List(ctx context.Context, q ListQuery) (*Page, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Sort.Column == "" {
		q.Sort = DefaultSort
	}
	if !isSortColumn(q.Sort.Column) {
		return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidSort, q.Sort.Column)
	}

	page, err := s.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return page, nil
}
