package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hoanghai1803/postdesk/internal/auth"
	"github.com/hoanghai1803/postdesk/internal/models"
	"github.com/hoanghai1803/postdesk/internal/posts"
	"go.uber.org/zap"
)

// Messages returned by the create endpoint.
const (
	msgUnauthorized  = "Unauthorized"
	msgMissingFields = "Missing required fields"
	msgSlugExists    = "Slug already exists"
	msgNotCreated    = "Failed to create blog post"
	msgServerError   = "Server error"
)

// maxBodyBytes caps the size of a create request body.
const maxBodyBytes = 1 << 20

// PostCreator creates a post from a decoded request body.
type PostCreator interface {
	Create(ctx context.Context, p models.NewPost) (*models.BlogPost, error)
}

// CreatePostResponse is the success body of POST /api/admin/blog.
type CreatePostResponse struct {
	Success bool             `json:"success"`
	Post    *models.BlogPost `json:"post"`
}

// CreatePost handles POST /api/admin/blog. Non-admins get 403 before the body
// is read. A missing or malformed body counts as an empty post and fails
// validation with 400.
func CreatePost(gate auth.Gate, creator PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := gate.IsAdmin(r)
		if err != nil {
			zap.S().Errorw("admin check failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
			return
		}
		if !ok {
			writeError(w, http.StatusForbidden, msgUnauthorized)
			return
		}

		var body models.NewPost
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
			body = models.NewPost{}
		}

		post, err := creator.Create(r.Context(), body)
		switch {
		case err == nil:
			zap.S().Infow("created blog post", "id", post.ID, "slug", post.Slug)
			writeJSON(w, http.StatusOK, CreatePostResponse{Success: true, Post: post})
		case errors.Is(err, posts.ErrMissingFields):
			writeError(w, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, posts.ErrSlugExists):
			writeError(w, http.StatusConflict, msgSlugExists)
		case errors.Is(err, posts.ErrNotCreated):
			zap.S().Errorw("insert returned no rows", "slug", body.Slug)
			writeError(w, http.StatusInternalServerError, msgNotCreated)
		default:
			zap.S().Errorw("failed to create blog post", "slug", body.Slug, "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
		}
	}
}
