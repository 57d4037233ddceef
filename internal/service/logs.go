package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/klauspost/compress/zip"

	"logapi/internal/model"
	"logapi/internal/storage"
)

var ErrNameRequired = errors.New("file name is required")

// archiveEntryMode is the fixed mode recorded for every archive entry,
// independent of the on-disk permissions of the stored file.
const archiveEntryMode = 0o644

// LogService defines the use cases for handling uploaded log files.
type LogService interface {
	// Store persists one uploaded payload under today's directory and
	// returns the stored file's metadata. Uploads already stored by the
	// same request are kept even if a later Store call fails.
	Store(ctx context.Context, originalName string, data []byte) (*model.LogFile, error)

	// Archive packs every stored log file into a single zip. The archive
	// is finalized in memory before the bytes are returned, so peak memory
	// grows with the total stored size.
	Archive(ctx context.Context) ([]byte, error)
}

// logService is a concrete implementation of LogService.
type logService struct {
	store storage.Storage
}

// NewLogService constructs a new LogService backed by the given storage.
func NewLogService(store storage.Storage) LogService {
	return &logService{store: store}
}

func (s *logService) Store(ctx context.Context, originalName string, data []byte) (*model.LogFile, error) {
	if originalName == "" {
		return nil, ErrNameRequired
	}

	info, err := s.store.Save(ctx, originalName, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	log.Printf("File uploaded: %s -> %s", originalName, info.Path)

	return &model.LogFile{
		Name:         path.Base(info.Key),
		StorageKey:   info.Key,
		OriginalName: originalName,
		Size:         info.Size,
		SavedAt:      info.SavedAt,
	}, nil
}

// Archive writes one DEFLATE entry per stored file, named by the file's
// root-relative slash key. Any read or write failure aborts the whole build.
func (s *logService) Archive(ctx context.Context) ([]byte, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		fh := zip.FileHeader{Name: f.Key, Method: zip.Deflate}
		fh.SetMode(archiveEntryMode)
		dst, err := zw.CreateHeader(&fh)
		if err != nil {
			return nil, fmt.Errorf("add archive entry %s: %w", f.Key, err)
		}

		src, err := s.store.Open(ctx, f.Key)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(dst, src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s into archive: %w", f.Key, err)
		}
	}

	// The central directory is written by Close; the buffer is not a valid
	// zip until it succeeds.
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
