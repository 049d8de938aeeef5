package models

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// BlogPost is a persisted blog post row.
type BlogPost struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Author     string    `json:"author"`
	ReadTime   *string   `json:"readTime"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewPost is the body of a create request. CoverImage and ReadTime are
// optional and stay nil when the caller sends null or omits them.
type NewPost struct {
	Title      string  `json:"title" validate:"required"`
	Slug       string  `json:"slug" validate:"required"`
	Excerpt    string  `json:"excerpt" validate:"required"`
	Content    string  `json:"content" validate:"required"`
	CoverImage *string `json:"coverImage"`
	Author     string  `json:"author" validate:"required"`
	ReadTime   *string `json:"readTime"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks that every required field is present and non-empty.
func (p *NewPost) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate.Struct(p)
}

// Normalize turns empty optional fields into nil so they are stored as NULL.
func (p *NewPost) Normalize() {
	if p.CoverImage != nil && *p.CoverImage == "" {
		p.CoverImage = nil
	}
	if p.ReadTime != nil && *p.ReadTime == "" {
		p.ReadTime = nil
	}
}
