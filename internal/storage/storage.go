package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage persists uploaded log files on the local filesystem,
// grouped into one subdirectory per calendar day under a single root.

// Sentinel errors returned by Storage implementations. Callers map these
// to HTTP statuses with errors.Is.
var (
	// ErrRootNotFound means the storage root directory does not exist.
	ErrRootNotFound = errors.New("storage root does not exist")
	// ErrUnsafeName means a name or key would resolve outside the root.
	ErrUnsafeName = errors.New("unsafe file name")
	// ErrDirCreate means the daily directory could not be created.
	ErrDirCreate = errors.New("failed to create directory")
	// ErrFileWrite means an uploaded payload could not be written.
	ErrFileWrite = errors.New("failed to save file")
	// ErrFileRead means a stored file could not be enumerated or read.
	ErrFileRead = errors.New("failed to read file")
)

// FileInfo describes one stored file.
type FileInfo struct {
	// Key is the file's path relative to the storage root, always with
	// forward slashes. Archive entries are named by this key.
	Key string
	// Path is the absolute location on disk.
	Path string
	// Size is the stored byte count.
	Size int64
	// SavedAt is when the file was written.
	SavedAt time.Time
}

// Storage stores and retrieves uploaded log files. Implementations must
// be safe for concurrent use by multiple request goroutines.
type Storage interface {
	// Save writes one uploaded payload under the current day's directory,
	// creating the directory if needed, and returns the stored file's info.
	// The stored name is derived from originalName; it never introduces
	// directory components.
	Save(ctx context.Context, originalName string, r io.Reader) (FileInfo, error)
	// List enumerates every regular file under the root. It fails with
	// ErrRootNotFound if the root directory is missing.
	List(ctx context.Context) ([]FileInfo, error)
	// Open opens a stored file for reading by its root-relative key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
