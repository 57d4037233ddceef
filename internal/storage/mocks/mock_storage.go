package mocks

import (
	"context"
	"io"

	"logapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, originalName string, r io.Reader) (storage.FileInfo, error) {
	args := m.Called(ctx, originalName, r)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader) storage.FileInfo); ok {
		return f(ctx, originalName, r), args.Error(1)
	}
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context) ([]storage.FileInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.FileInfo), args.Error(1)
}

func (m *MockStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
