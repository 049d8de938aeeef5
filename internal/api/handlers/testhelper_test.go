package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/hoanghai1803/postdesk/internal/auth"
	"github.com/hoanghai1803/postdesk/internal/models"
	"github.com/hoanghai1803/postdesk/internal/posts"
	"github.com/hoanghai1803/postdesk/internal/storage"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory SQLite store with migrations applied.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	require.NoError(t, err, "opening test db")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.RunMigrations(db), "running migrations")
	return storage.NewStore(db)
}

// countingStore wraps a posts.Store and counts calls. With noRows set the
// insert succeeds without returning anything.
type countingStore struct {
	next   posts.Store
	noRows bool
	err    error

	calls int
}

func (c *countingStore) FindPostsBySlug(ctx context.Context, slug string) ([]models.BlogPost, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.next.FindPostsBySlug(ctx, slug)
}

func (c *countingStore) InsertPost(ctx context.Context, p models.NewPost) ([]models.BlogPost, error) {
	c.calls++
	if c.noRows {
		return []models.BlogPost{}, nil
	}
	return c.next.InsertPost(ctx, p)
}

var (
	allowAll = auth.GateFunc(func(*http.Request) (bool, error) { return true, nil })
	denyAll  = auth.DenyAll
)
