package mocks

import (
	"context"

	"logapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) Store(ctx context.Context, originalName string, data []byte) (*model.LogFile, error) {
	args := m.Called(ctx, originalName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogFile), args.Error(1)
}

func (m *MockLogService) Archive(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
