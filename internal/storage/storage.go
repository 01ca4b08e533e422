// Package storage holds the S3-compatible object store used for study materials
// uploaded to sessions. Objects are streamed; nothing is written to local disk.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotConfigured is returned by constructors when no endpoint is set.
	ErrNotConfigured = errors.New("object storage is not configured")
	// ErrObjectNotFound is returned when a key has no object behind it.
	ErrObjectNotFound = errors.New("object not found")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the object store used by the session service.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// MaterialMetadata is the user metadata stored with an uploaded material.
func MaterialMetadata(filename string) map[string]string {
	return map[string]string{originalFilenameMeta: filename}
}

// MaterialPrefix returns the key prefix under which a session's materials are stored.
func MaterialPrefix(sessionID string) string {
	return "materials/" + sessionID + "/"
}

// NewMaterialKey returns a fresh object key for a file attached to a session.
// Only the lower-cased extension of the original filename is kept.
func NewMaterialKey(sessionID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return MaterialPrefix(sessionID) + uuid.NewString() + ext
}
