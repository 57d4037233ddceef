package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logapi/internal/model"
	"logapi/internal/storage"
	storeMocks "logapi/internal/storage/mocks"
)

func TestLogService_Store(t *testing.T) {
	ctx := context.Background()
	savedAt := time.Date(2025, 8, 25, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		originalName string
		data         []byte
		setupMocks   func(mStore *storeMocks.MockStorage)
		wantErr      error
		check        func(t *testing.T, lf *model.LogFile)
	}{
		{
			name:         "happy path",
			originalName: "test.log",
			data:         []byte("hello world"),
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Save", ctx, "test.log", mock.MatchedBy(func(r io.Reader) bool {
					b, err := io.ReadAll(r)
					return err == nil && string(b) == "hello world"
				})).Return(storage.FileInfo{
					Key:     "2025-08-25/1756124200_ab12cd34_test.log",
					Path:    "/data/logs/2025-08-25/1756124200_ab12cd34_test.log",
					Size:    11,
					SavedAt: savedAt,
				}, nil)
			},
			check: func(t *testing.T, lf *model.LogFile) {
				assert.Equal(t, "1756124200_ab12cd34_test.log", lf.Name)
				assert.Equal(t, "2025-08-25/1756124200_ab12cd34_test.log", lf.StorageKey)
				assert.Equal(t, "test.log", lf.OriginalName)
				assert.Equal(t, int64(11), lf.Size)
				assert.Equal(t, savedAt, lf.SavedAt)
			},
		},
		{
			name:         "validation - empty name",
			originalName: "",
			data:         []byte("x"),
			setupMocks:   func(mStore *storeMocks.MockStorage) {},
			wantErr:      ErrNameRequired,
		},
		{
			name:         "storage error passes through with its kind",
			originalName: "test.log",
			data:         []byte("x"),
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Save", ctx, "test.log", mock.Anything).
					Return(storage.FileInfo{}, fmt.Errorf("%w: %v", storage.ErrDirCreate, errors.New("disk full")))
			},
			wantErr: storage.ErrDirCreate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			svc := NewLogService(mStore)

			tt.setupMocks(mStore)

			lf, err := svc.Store(ctx, tt.originalName, tt.data)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, lf)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, lf)
				if tt.check != nil {
					tt.check(t, lf)
				}
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestLogService_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("packs every stored file", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewLogService(mStore)

		mStore.On("List", ctx).Return([]storage.FileInfo{
			{Key: "2025-08-24/1_aa_one.log", Size: 5},
			{Key: "2025-08-25/2_bb_two.log", Size: 2},
		}, nil)
		mStore.On("Open", ctx, "2025-08-24/1_aa_one.log").
			Return(io.NopCloser(strings.NewReader("hello")), nil)
		mStore.On("Open", ctx, "2025-08-25/2_bb_two.log").
			Return(io.NopCloser(strings.NewReader("hi")), nil)

		data, err := svc.Archive(ctx)
		require.NoError(t, err)

		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		require.Len(t, zr.File, 2)

		want := map[string]string{
			"2025-08-24/1_aa_one.log": "hello",
			"2025-08-25/2_bb_two.log": "hi",
		}
		for _, zf := range zr.File {
			content, ok := want[zf.Name]
			require.True(t, ok, "unexpected entry %q", zf.Name)

			assert.Equal(t, uint16(zip.Deflate), zf.Method)
			assert.Equal(t, fs.FileMode(archiveEntryMode), zf.Mode())

			rc, err := zf.Open()
			require.NoError(t, err)
			got, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			assert.Equal(t, content, string(got))
		}
		mStore.AssertExpectations(t)
	})

	t.Run("empty storage yields a valid empty archive", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewLogService(mStore)

		mStore.On("List", ctx).Return([]storage.FileInfo{}, nil)

		data, err := svc.Archive(ctx)
		require.NoError(t, err)

		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		assert.Empty(t, zr.File)
	})

	t.Run("missing root passes through", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewLogService(mStore)

		mStore.On("List", ctx).Return(nil, storage.ErrRootNotFound)

		_, err := svc.Archive(ctx)
		assert.ErrorIs(t, err, storage.ErrRootNotFound)
	})

	t.Run("open failure aborts the build", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewLogService(mStore)

		mStore.On("List", ctx).Return([]storage.FileInfo{{Key: "2025-08-25/1_aa_one.log"}}, nil)
		mStore.On("Open", ctx, "2025-08-25/1_aa_one.log").Return(nil, storage.ErrFileRead)

		_, err := svc.Archive(ctx)
		assert.ErrorIs(t, err, storage.ErrFileRead)
	})

	t.Run("read failure aborts the build", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		svc := NewLogService(mStore)

		mStore.On("List", ctx).Return([]storage.FileInfo{{Key: "2025-08-25/1_aa_one.log"}}, nil)
		mStore.On("Open", ctx, "2025-08-25/1_aa_one.log").Return(brokenReadCloser{}, nil)

		_, err := svc.Archive(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "into archive")
	})
}

type brokenReadCloser struct{}

func (brokenReadCloser) Read([]byte) (int, error) { return 0, errors.New("read fail") }
func (brokenReadCloser) Close() error             { return nil }
