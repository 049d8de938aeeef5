// Package posts holds the create-post flow behind the admin endpoint:
// required-field validation, the slug uniqueness check and the insert.
package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoanghai1803/postdesk/internal/models"
	"github.com/hoanghai1803/postdesk/internal/storage"
)

var (
	// ErrMissingFields is returned when a required field is absent or empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrSlugExists is returned when another post already uses the slug.
	ErrSlugExists = errors.New("slug already exists")

	// ErrNotCreated is returned when the store reports no created rows.
	ErrNotCreated = errors.New("failed to create blog post")
)

// Store is the persistence the service needs: a slug lookup and an insert
// that returns the created rows.
type Store interface {
	FindPostsBySlug(ctx context.Context, slug string) ([]models.BlogPost, error)
	InsertPost(ctx context.Context, p models.NewPost) ([]models.BlogPost, error)
}

// Service creates blog posts.
type Service struct {
	store Store
}

// NewService creates a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates p, rejects a slug that is already taken and inserts the
// post. It returns the first created row.
//
// The existence check and the insert are separate statements, so two
// concurrent requests can both pass the check. The unique slug index is what
// actually guarantees uniqueness; its violation is reported as ErrSlugExists
// as well.
func (s *Service) Create(ctx context.Context, p models.NewPost) (*models.BlogPost, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
	}
	p.Normalize()

	existing, err := s.store.FindPostsBySlug(ctx, p.Slug)
	if err != nil {
		return nil, fmt.Errorf("checking slug %q: %w", p.Slug, err)
	}
	if len(existing) > 0 {
		return nil, ErrSlugExists
	}

	created, err := s.store.InsertPost(ctx, p)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateSlug) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("inserting post %q: %w", p.Slug, err)
	}
	if len(created) == 0 {
		return nil, ErrNotCreated
	}

	return &created[0], nil
}
