package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hoanghai1803/postdesk/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const postColumns = `id, title, slug, excerpt, content, cover_image, author, read_time, created_at`

// FindPostsBySlug returns every post whose slug equals slug. The unique index
// keeps the result at zero or one rows.
func (s *Store) FindPostsBySlug(ctx context.Context, slug string) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = ?`, slug)
	if err != nil {
		return nil, fmt.Errorf("querying posts by slug: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning posts by slug: %w", err)
	}
	return posts, nil
}

// InsertPost inserts p and returns the created rows. A slug that is already
// taken yields ErrDuplicateSlug.
func (s *Store) InsertPost(ctx context.Context, p models.NewPost) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`INSERT INTO blog_posts (title, slug, excerpt, content, cover_image, author, read_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+postColumns,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Author, p.ReadTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("inserting post: %w", err)
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("reading inserted post: %w", err)
	}
	return posts, nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanner is a minimal interface satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPosts(rows *sql.Rows) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func scanPost(row scanner) (*models.BlogPost, error) {
	var (
		post       models.BlogPost
		coverImage sql.NullString
		readTime   sql.NullString
		createdAt  string
	)

	if err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content,
		&coverImage, &post.Author, &readTime, &createdAt,
	); err != nil {
		return nil, err
	}

	post.CoverImage = nullStringToPtr(coverImage)
	post.ReadTime = nullStringToPtr(readTime)
	post.CreatedAt = parseTime(createdAt)
	return &post, nil
}

// nullStringToPtr converts a sql.NullString to a *string.
func nullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
