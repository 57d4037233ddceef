package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Filesystem implements the Storage interface on a local directory tree.
// Every upload lands in a lazily created daily subdirectory; uniqueness of
// stored names is the only coordination between concurrent writers.
type Filesystem struct {
	root string

	// now and token are swappable for tests.
	now   func() time.Time
	token func() string
}

// NewFilesystem creates a Storage rooted at the given directory. The root
// itself is not created here; missing roots surface as ErrRootNotFound on
// List and are created on demand by Save.
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{
		root:  root,
		now:   time.Now,
		token: newToken,
	}
}

// newToken returns a short random identifier used to break same-second
// name collisions between concurrent uploads.
func newToken() string {
	return uuid.NewString()[:8]
}

// Save writes the payload to <root>/<YYYY-MM-DD>/<unix_ts>_<token>_<name>.
func (f *Filesystem) Save(ctx context.Context, originalName string, r io.Reader) (FileInfo, error) {
	now := f.now()

	dir := dailyDir(f.root, now)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("%w: %v", ErrDirCreate, err)
	}

	dest, err := joinWithinRoot(f.root, dir, storedName(now, f.token(), originalName))
	if err != nil {
		return FileInfo{}, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return FileInfo{}, fmt.Errorf("%w: %v", ErrFileWrite, err)
	}
	if err := out.Close(); err != nil {
		return FileInfo{}, fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	rel, err := filepath.Rel(f.root, dest)
	if err != nil {
		return FileInfo{}, fmt.Errorf("%w: %v", ErrFileWrite, err)
	}

	return FileInfo{
		Key:     filepath.ToSlash(rel),
		Path:    dest,
		Size:    n,
		SavedAt: now,
	}, nil
}

// List walks the root recursively and returns every regular file. Entries
// come back in the walk's lexical order; callers must not rely on it.
func (f *Filesystem) List(ctx context.Context) ([]FileInfo, error) {
	if _, err := os.Stat(f.root); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, f.root)
		}
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}

	var files []FileInfo
	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Key:     filepath.ToSlash(rel),
			Path:    p,
			Size:    info.Size(),
			SavedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	return files, nil
}

// Open opens a stored file by its root-relative key.
func (f *Filesystem) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	dest, err := joinWithinRoot(f.root, f.root, filepath.FromSlash(key))
	if err != nil {
		return nil, err
	}

	file, err := os.Open(dest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	return file, nil
}
