package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/snapboard/posts/internal/middleware"
)

type memStorage struct {
	objects  map[string][]byte
	metadata map[string]map[string]string
	err      error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, metadata: map[string]map[string]string{}}
}

func (m *memStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string, metadata map[string]string) error {
	if m.err != nil {
		return m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = b
	m.metadata[key] = metadata
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStorage) PublicURL(key string) string { return "https://cdn.test/" + key }

// recorder is a downstream handler that remembers what Upload passed on.
type recorder struct {
	called bool
	file   middleware.UploadedFile
	found  bool
	title  string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec.called = true
	rec.file, rec.found = middleware.UploadedFileFrom(r.Context())
	rec.title = r.PostFormValue("title")
	w.WriteHeader(http.StatusNoContent)
}

func formRequest(t *testing.T, field, fileName, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", "hello"); err != nil {
		t.Fatal(err)
	}
	if field != "" {
		fw, err := mw.CreateFormFile(field, fileName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(fw, content); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadStoresFileBeforeHandler(t *testing.T) {
	store := newMemStorage()
	next := &recorder{}
	h := middleware.Upload(store, "image", 1<<20)(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, formRequest(t, "image", "cat.jpg", "meow"))

	if !next.called || !next.found {
		t.Fatalf("downstream called=%v found=%v", next.called, next.found)
	}
	obj, ok := store.objects[next.file.Key]
	if !ok || string(obj) != "meow" {
		t.Fatalf("object %q = %q, %v", next.file.Key, obj, ok)
	}
	if next.file.URL != "https://cdn.test/"+next.file.Key {
		t.Errorf("URL = %q", next.file.URL)
	}
	if !strings.HasSuffix(next.file.Key, ".jpg") {
		t.Errorf("key %q lost the extension", next.file.Key)
	}
	if next.file.Size != 4 || next.file.ContentType != "application/octet-stream" {
		t.Errorf("size=%d contentType=%q", next.file.Size, next.file.ContentType)
	}
	if store.metadata[next.file.Key]["fieldName"] != "image" {
		t.Errorf("metadata = %v", store.metadata[next.file.Key])
	}
	if next.title != "hello" {
		t.Errorf("form field title = %q, want hello", next.title)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	tests := []struct {
		name  string
		field string
	}{
		{"no file part", ""},
		{"other field", "photo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStorage()
			next := &recorder{}
			middleware.Upload(store, "image", 1<<20)(next).ServeHTTP(httptest.NewRecorder(), formRequest(t, tt.field, "a.png", "x"))

			if !next.called {
				t.Fatal("downstream not called")
			}
			if next.found {
				t.Errorf("unexpected uploaded file %+v", next.file)
			}
			if len(store.objects) != 0 {
				t.Errorf("%d objects stored", len(store.objects))
			}
		})
	}
}

func TestUploadStorageFailure(t *testing.T) {
	store := newMemStorage()
	store.err = errors.New("bucket gone")
	next := &recorder{}

	w := httptest.NewRecorder()
	middleware.Upload(store, "image", 1<<20)(next).ServeHTTP(w, formRequest(t, "image", "a.png", "x"))

	if next.called {
		t.Error("downstream called after failed upload")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Internal Server Error"`) {
		t.Errorf("body = %s", w.Body)
	}
}

func TestUploadBodyTooLarge(t *testing.T) {
	store := newMemStorage()
	next := &recorder{}

	w := httptest.NewRecorder()
	middleware.Upload(store, "image", 64)(next).ServeHTTP(w, formRequest(t, "image", "a.png", strings.Repeat("x", 1024)))

	if next.called {
		t.Error("downstream called for oversized body")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if len(store.objects) != 0 {
		t.Error("oversized file stored")
	}
}
