package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hoanghai1803/postdesk/internal/feeds"
	"github.com/hoanghai1803/postdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	calls    int
	payloads []Payload
	resp     *Response
	err      error
	block    chan struct{}
}

func (c *fakeClient) CreatePost(ctx context.Context, p Payload) (*Response, error) {
	c.mu.Lock()
	c.calls++
	c.payloads = append(c.payloads, p)
	c.mu.Unlock()

	if c.block != nil {
		<-c.block
	}
	return c.resp, c.err
}

func (c *fakeClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func (r *recorder) last(t *testing.T) Notification {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.notes)
	return r.notes[len(r.notes)-1]
}

func fill(f *Form) {
	f.SetTitle("Hello, World!")
	f.SetExcerpt("A first post")
	f.SetContent("Body text")
	f.SetAuthor("Ada")
}

func TestSetTitle_DerivesSlugUntilEdited(t *testing.T) {
	f := New(&fakeClient{}, &recorder{})

	f.SetTitle("Hello, World!")
	assert.Equal(t, "hello-world", f.Values().Slug)
	assert.Equal(t, SlugAuto, f.SlugMode())

	f.SetSlug("custom")
	assert.Equal(t, SlugEdited, f.SlugMode())

	f.SetTitle("Something Else")
	assert.Equal(t, "custom", f.Values().Slug, "edited slug must survive title changes")
	assert.Equal(t, "Something Else", f.Values().Title)
}

func TestSetSlug_ClearingResumesDerivation(t *testing.T) {
	f := New(&fakeClient{}, &recorder{})

	f.SetSlug("custom")
	f.SetSlug("")
	assert.Equal(t, SlugAuto, f.SlugMode())

	f.SetTitle("Back To Auto")
	assert.Equal(t, "back-to-auto", f.Values().Slug)
}

func TestSubmit_ValidationShortCircuits(t *testing.T) {
	setters := map[string]func(*Form){
		"title":   func(f *Form) { f.SetTitle("") },
		"slug":    func(f *Form) { f.SetSlug("") },
		"excerpt": func(f *Form) { f.SetExcerpt("") },
		"content": func(f *Form) { f.SetContent("") },
		"author":  func(f *Form) { f.SetAuthor("") },
	}

	for name, blank := range setters {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{}
			notes := &recorder{}
			f := New(client, notes)
			fill(f)
			blank(f)

			post, err := f.Submit(context.Background())
			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, post)
			assert.Zero(t, client.callCount())
			assert.Equal(t, Notification{Kind: KindFailure, Title: "Validation Error", Description: "Fill required fields"}, notes.last(t))
			assert.False(t, f.Submitting())
		})
	}
}

func TestSubmit_SendsNullOptionals(t *testing.T) {
	client := &fakeClient{resp: &Response{StatusCode: 200, Success: true, Post: &models.BlogPost{ID: 1}}}
	f := New(client, &recorder{})
	fill(f)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, client.payloads, 1)
	p := client.payloads[0]
	assert.Equal(t, "hello-world", p.Slug)
	assert.Nil(t, p.CoverImage)
	assert.Nil(t, p.ReadTime)
}

func TestSubmit_SuccessResetsAndCallsBackOnce(t *testing.T) {
	created := &models.BlogPost{ID: 7, Slug: "custom"}
	client := &fakeClient{resp: &Response{StatusCode: 200, Success: true, Post: created}}
	notes := &recorder{}

	var callbacks []*models.BlogPost
	f := New(client, notes, WithOnCreated(func(p *models.BlogPost) {
		callbacks = append(callbacks, p)
	}))
	fill(f)
	f.SetSlug("custom")
	f.SetCoverImage("https://img.example.com/c.png")
	f.SetReadTime("3 min read")

	post, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Same(t, created, post)

	assert.Equal(t, Fields{}, f.Values())
	assert.Equal(t, SlugAuto, f.SlugMode())
	assert.False(t, f.Submitting())
	assert.Equal(t, Notification{Kind: KindSuccess, Title: "Success", Description: "Blog post created"}, notes.last(t))
	require.Len(t, callbacks, 1)
	assert.Same(t, created, callbacks[0])

	p := client.payloads[0]
	require.NotNil(t, p.CoverImage)
	assert.Equal(t, "https://img.example.com/c.png", *p.CoverImage)
	require.NotNil(t, p.ReadTime)
	assert.Equal(t, "3 min read", *p.ReadTime)
}

func TestSubmit_RejectionKeepsFields(t *testing.T) {
	tests := []struct {
		name     string
		resp     *Response
		wantDesc string
	}{
		{name: "conflict", resp: &Response{StatusCode: 409, Error: "Slug already exists"}, wantDesc: "Slug already exists"},
		{name: "forbidden", resp: &Response{StatusCode: 403, Error: "Unauthorized"}, wantDesc: "Unauthorized"},
		{name: "no message", resp: &Response{StatusCode: 500}, wantDesc: "Failed to create post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &recorder{}
			called := false
			f := New(&fakeClient{resp: tt.resp}, notes, WithOnCreated(func(*models.BlogPost) { called = true }))
			fill(f)
			before := f.Values()

			_, err := f.Submit(context.Background())
			assert.ErrorIs(t, err, ErrRejected)
			assert.Equal(t, before, f.Values())
			assert.False(t, f.Submitting())
			assert.False(t, called)
			assert.Equal(t, Notification{Kind: KindFailure, Title: "Error", Description: tt.wantDesc}, notes.last(t))
		})
	}
}

func TestSubmit_TransportFailureKeepsFields(t *testing.T) {
	for _, cause := range []error{
		errors.New("connection refused"),
		errors.Join(ErrTransport, errors.New("bad json")),
	} {
		notes := &recorder{}
		f := New(&fakeClient{err: cause}, notes)
		fill(f)
		before := f.Values()

		_, err := f.Submit(context.Background())
		assert.ErrorIs(t, err, ErrTransport)
		assert.Equal(t, before, f.Values())
		assert.False(t, f.Submitting())
		assert.Equal(t, Notification{Kind: KindFailure, Title: "Error", Description: "Server error"}, notes.last(t))
	}
}

func TestSubmit_SuccessWithoutPostIsMalformed(t *testing.T) {
	notes := &recorder{}
	called := false
	f := New(&fakeClient{resp: &Response{StatusCode: 200, Success: true}}, notes,
		WithOnCreated(func(*models.BlogPost) { called = true }))
	fill(f)
	before := f.Values()

	post, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Nil(t, post)
	assert.False(t, called)
	assert.Equal(t, before, f.Values())
	assert.Equal(t, Notification{Kind: KindFailure, Title: "Error", Description: "Server error"}, notes.last(t))
}

func TestSubmit_RejectsConcurrentSubmit(t *testing.T) {
	client := &fakeClient{
		resp:  &Response{StatusCode: 200, Success: true, Post: &models.BlogPost{ID: 1}},
		block: make(chan struct{}),
	}
	f := New(client, &recorder{})
	fill(f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, f.Submitting, timeoutShort, tick)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)

	close(client.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, client.callCount())
	assert.False(t, f.Submitting())
}

func TestPrefill(t *testing.T) {
	f := New(&fakeClient{}, &recorder{})
	f.SetAuthor("Ada")

	f.Prefill(feeds.Entry{
		Title:      "Shipping & Slugs",
		Excerpt:    "How we name things.",
		Content:    "<p>Full body.</p>",
		CoverImage: "https://notes.example.com/cover.png",
	})

	got := f.Values()
	assert.Equal(t, "Shipping & Slugs", got.Title)
	assert.Equal(t, "shipping-slugs", got.Slug)
	assert.Equal(t, "How we name things.", got.Excerpt)
	assert.Equal(t, "<p>Full body.</p>", got.Content)
	assert.Equal(t, "https://notes.example.com/cover.png", got.CoverImage)
	assert.Equal(t, "Ada", got.Author, "empty entry author keeps the draft author")
}

func TestEstimateReadTime(t *testing.T) {
	f := New(&fakeClient{}, &recorder{})

	f.EstimateReadTime()
	assert.Empty(t, f.Values().ReadTime, "no content, nothing to estimate")

	f.SetContent("A few words of content.")
	f.EstimateReadTime()
	assert.Equal(t, "1 min read", f.Values().ReadTime)

	f.SetReadTime("10 min read")
	f.EstimateReadTime()
	assert.Equal(t, "10 min read", f.Values().ReadTime, "explicit read time is kept")
}
