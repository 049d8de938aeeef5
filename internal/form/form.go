// Package form holds the state of a blog post draft while an admin fills it
// in, and submits it to the create endpoint.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hoanghai1803/postdesk/internal/feeds"
	"github.com/hoanghai1803/postdesk/internal/models"
	"github.com/hoanghai1803/postdesk/internal/slug"
	"go.uber.org/zap"
)

var (
	// ErrSubmitting is returned when a submit is already in flight.
	ErrSubmitting = errors.New("submit already in progress")
	// ErrValidation is returned when a required field is empty.
	ErrValidation = errors.New("required fields missing")
	// ErrRejected is returned when the server answered with a failure.
	ErrRejected = errors.New("post rejected")
	// ErrTransport is returned when no usable response arrived.
	ErrTransport = errors.New("transport failure")
)

// SlugMode tells whether the slug still follows the title.
type SlugMode int

const (
	// SlugAuto re-derives the slug whenever the title changes.
	SlugAuto SlugMode = iota
	// SlugEdited keeps a hand-written slug.
	SlugEdited
)

// Fields is a snapshot of the draft.
type Fields struct {
	Title      string
	Slug       string
	Excerpt    string
	Content    string
	CoverImage string
	Author     string
	ReadTime   string
}

func (f Fields) missingRequired() bool {
	return f.Title == "" || f.Slug == "" || f.Excerpt == "" || f.Content == "" || f.Author == ""
}

func (f Fields) payload() Payload {
	return Payload{
		Title:      f.Title,
		Slug:       f.Slug,
		Excerpt:    f.Excerpt,
		Content:    f.Content,
		CoverImage: optional(f.CoverImage),
		Author:     f.Author,
		ReadTime:   optional(f.ReadTime),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Option configures a Form.
type Option func(*Form)

// WithOnCreated registers a callback run once per successful submit.
func WithOnCreated(fn func(*models.BlogPost)) Option {
	return func(f *Form) { f.onCreated = fn }
}

// Form is a blog post draft. It is safe for concurrent use; the network call
// happens outside the lock.
type Form struct {
	mu         sync.Mutex
	fields     Fields
	mode       SlugMode
	submitting bool

	client    Client
	notifier  Notifier
	onCreated func(*models.BlogPost)
}

// New creates an empty form that submits through client and reports to
// notifier.
func New(client Client, notifier Notifier, opts ...Option) *Form {
	f := &Form{client: client, notifier: notifier}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetTitle stores the title and, unless the slug was edited by hand,
// re-derives the slug from it.
func (f *Form) SetTitle(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.Title = v
	if f.mode == SlugAuto {
		f.fields.Slug = slug.Derive(v)
	}
}

// SetSlug stores a hand-written slug. Clearing it hands control back to the
// title.
func (f *Form) SetSlug(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.Slug = v
	if v == "" {
		f.mode = SlugAuto
	} else {
		f.mode = SlugEdited
	}
}

// SetExcerpt stores the excerpt.
func (f *Form) SetExcerpt(v string) { f.set(func(fs *Fields) { fs.Excerpt = v }) }

// SetContent stores the post body.
func (f *Form) SetContent(v string) { f.set(func(fs *Fields) { fs.Content = v }) }

// SetCoverImage stores the cover image URL. Empty is sent as null.
func (f *Form) SetCoverImage(v string) { f.set(func(fs *Fields) { fs.CoverImage = v }) }

// SetAuthor stores the author name.
func (f *Form) SetAuthor(v string) { f.set(func(fs *Fields) { fs.Author = v }) }

// SetReadTime stores the read time label. Empty is sent as null.
func (f *Form) SetReadTime(v string) { f.set(func(fs *Fields) { fs.ReadTime = v }) }

func (f *Form) set(apply func(*Fields)) {
	f.mu.Lock()
	apply(&f.fields)
	f.mu.Unlock()
}

// Values returns a snapshot of the draft.
func (f *Form) Values() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// SlugMode reports whether the slug still follows the title.
func (f *Form) SlugMode() SlugMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Prefill copies a feed entry into the draft. Empty entry fields leave the
// draft untouched.
func (f *Form) Prefill(e feeds.Entry) {
	if e.Title != "" {
		f.SetTitle(e.Title)
	}
	if e.Excerpt != "" {
		f.SetExcerpt(e.Excerpt)
	}
	if e.Content != "" {
		f.SetContent(e.Content)
	}
	if e.CoverImage != "" {
		f.SetCoverImage(e.CoverImage)
	}
	if e.Author != "" {
		f.SetAuthor(e.Author)
	}
}

// EstimateReadTime fills an empty read time from the content.
func (f *Form) EstimateReadTime() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fields.ReadTime != "" || f.fields.Content == "" {
		return
	}
	f.fields.ReadTime = feeds.EstimateReadTime(f.fields.Content)
}

// Submit sends the draft to the create endpoint. On success the draft is
// cleared and the created post, never nil, is returned and passed to the
// completion callback. On any failure the draft is kept so it can be
// corrected and sent again. A success status without a post counts as a
// malformed response.
func (f *Form) Submit(ctx context.Context) (*models.BlogPost, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	values := f.fields
	if values.missingRequired() {
		f.mu.Unlock()
		f.notifier.Notify(validationFailed())
		return nil, ErrValidation
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	resp, err := f.client.CreatePost(ctx, values.payload())
	if err != nil {
		zap.S().Errorw("create post request failed", "slug", values.Slug, "error", err)
		f.notifier.Notify(serverError())
		if errors.Is(err, ErrTransport) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if !resp.OK() {
		f.notifier.Notify(rejected(resp.Error))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, resp.Error)
	}
	if resp.Post == nil {
		zap.S().Errorw("create post response has no post", "slug", values.Slug, "status", resp.StatusCode)
		f.notifier.Notify(serverError())
		return nil, fmt.Errorf("%w: status %d response without post", ErrTransport, resp.StatusCode)
	}

	f.mu.Lock()
	f.fields = Fields{}
	f.mode = SlugAuto
	f.mu.Unlock()

	f.notifier.Notify(created())
	if f.onCreated != nil {
		f.onCreated(resp.Post)
	}
	return resp.Post, nil
}
