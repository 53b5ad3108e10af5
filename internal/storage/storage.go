// Package storage defines the interface for object storage operations.
// The MinIO implementation works with AWS S3 and any S3-compatible provider.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage is the interface for uploading and retrieving objects.
type Storage interface {
	// Upload streams data to the store under the given key as a publicly readable object.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}

// ObjectKey returns the storage key for an uploaded file: the upload time in
// unix milliseconds, a random UUID, and the lowercased extension of the
// original file name, e.g. "1718000000000-3f2b...-9c1d.jpg".
func ObjectKey(fileName string, now time.Time) string {
	key := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	if ext := strings.ToLower(filepath.Ext(fileName)); isSafeExt(ext) {
		key += ext
	}
	return key
}

// isSafeExt accepts ".<alnum>" up to 10 characters so client file names
// cannot smuggle path or query characters into the key.
func isSafeExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 || ext[0] != '.' {
		return false
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
