package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/snapboard/posts/internal/response"
	"github.com/snapboard/posts/internal/storage"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// UploadedFileKey is the context key for the file stored by Upload.
const UploadedFileKey contextKey = "uploadedFile"

// multipartMemory is how much of a multipart body is kept in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

// UploadedFile describes an object written to the blob store for this request.
type UploadedFile struct {
	Key         string
	URL         string
	Size        int64
	ContentType string
}

// UploadedFileFrom returns the file stored by Upload, if any.
func UploadedFileFrom(ctx context.Context) (UploadedFile, bool) {
	f, ok := ctx.Value(UploadedFileKey).(UploadedFile)
	return f, ok
}

// Upload returns middleware that stores the file sent under the multipart
// field and injects its public URL into the request context before calling
// next. Requests without that file reach next with no UploadedFile.
func Upload(store storage.Storage, field string, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			if err := r.ParseMultipartForm(multipartMemory); err != nil {
				if errors.Is(err, http.ErrNotMultipart) {
					next.ServeHTTP(w, r)
					return
				}
				log.Printf("upload: parse multipart form: %v", err)
				response.InternalError(w)
				return
			}
			// The server only cleans up forms on the request it created, not on copies.
			defer func() { _ = r.MultipartForm.RemoveAll() }()

			fh := firstFile(r.MultipartForm, field)
			if fh == nil {
				next.ServeHTTP(w, r)
				return
			}

			uploaded, err := storeFile(r.Context(), store, field, fh)
			if err != nil {
				log.Printf("upload: %v", err)
				response.InternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), UploadedFileKey, uploaded)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil || len(form.File[field]) == 0 {
		return nil
	}
	return form.File[field][0]
}

func storeFile(ctx context.Context, store storage.Storage, field string, fh *multipart.FileHeader) (UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("open %q: %w", fh.Filename, err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.ObjectKey(fh.Filename, time.Now())
	if err := store.Upload(ctx, key, f, fh.Size, contentType, map[string]string{"fieldName": field}); err != nil {
		return UploadedFile{}, err
	}

	return UploadedFile{
		Key:         key,
		URL:         store.PublicURL(key),
		Size:        fh.Size,
		ContentType: contentType,
	}, nil
}
