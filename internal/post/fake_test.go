package post_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/snapboard/posts/internal/post"
)

var errBoom = errors.New("boom")

// fakeStore is an in-memory post.Store that filters, orders and pages like
// the Postgres repository.
type fakeStore struct {
	mu        sync.Mutex
	posts     []post.Post
	createErr error
	listErr   error
	listCalls int
	lastQuery post.ListQuery
}

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func (s *fakeStore) Create(_ context.Context, p post.NewPost) (*post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	id := int64(len(s.posts) + 1)
	created := post.Post{
		ID:        id,
		Title:     p.Title,
		Desc:      p.Desc,
		Tag:       p.Tag,
		ImageURL:  p.ImageURL,
		CreatedAt: baseTime.Add(time.Duration(id) * time.Second),
	}
	created.UpdatedAt = created.CreatedAt
	s.posts = append(s.posts, created)
	return &created, nil
}

func (s *fakeStore) List(_ context.Context, q post.ListQuery) (*post.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	s.lastQuery = q
	if s.listErr != nil {
		return nil, s.listErr
	}

	var matched []post.Post
	kw := strings.ToLower(q.Keyword)
	for _, p := range s.posts {
		if kw != "" && !strings.Contains(strings.ToLower(p.Title), kw) && !strings.Contains(strings.ToLower(p.Desc), kw) {
			continue
		}
		if q.Tag != "" && p.Tag != q.Tag {
			continue
		}
		matched = append(matched, p)
	}

	less := func(a, b post.Post) bool {
		switch q.Sort.Column {
		case "title":
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case "created_at":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if q.Sort.Desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	page := &post.Page{Count: int64(len(matched)), Rows: []post.Post{}}
	start := q.Offset()
	if start < len(matched) {
		end := start + q.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Rows = append(page.Rows, matched[start:end]...)
	}
	return page, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *fakeStore) seed(t *testing.T, n int, title, desc, tag string) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := s.Create(context.Background(), post.NewPost{
			Title: title, Desc: desc, Tag: tag, ImageURL: "https://blobs.test/seed",
		}); err != nil {
			t.Fatal(err)
		}
	}
}

type uploadCall struct {
	key         string
	body        []byte
	size        int64
	contentType string
	metadata    map[string]string
}

// fakeBlobs is an in-memory storage.Storage.
type fakeBlobs struct {
	mu        sync.Mutex
	uploads   []uploadCall
	deleted   []string
	uploadErr error
}

func (b *fakeBlobs) Upload(_ context.Context, key string, r io.Reader, size int64, contentType string, metadata map[string]string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, uploadCall{key, body, size, contentType, metadata})
	return nil
}

func (b *fakeBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBlobs) PublicURL(key string) string {
	return "https://blobs.test/" + key
}

// multipartForm builds a multipart body with the given fields and, when
// fileName is non-empty, an "image" part holding content.
func multipartForm(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}
