// Package storage provides a Laravel-inspired filesystem abstraction used
// for product images and blog cover uploads.
//
// Two drivers are available out of the box:
//   - "local"  local filesystem (default)
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	// boot once in internal/server:
//	storage.Connect()
//
//	// default disk
//	storage.Put("products/photo.jpg", data)
//	url := storage.URL("products/photo.jpg")
//
//	// named disk
//	storage.Use("s3").Put("products/photo.jpg", data)
package storage

import (
	"io"
	"time"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file.
	Delete(path string) error

	// Files lists filenames directly inside directory.
	Files(directory string) ([]string, error)
}

// Presigner is implemented by disks that can mint time-limited upload URLs,
// letting the admin dashboard push images straight to object storage.
type Presigner interface {
	PresignPut(path string, expires time.Duration) (string, error)
}
