// Package mocks provides a testify/mock double for the generic Command interface.
package mocks

import (
	"context"

	"github.com/averyhn/shelfrate/internal/command"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCommand mocks command.Command for any request/result pair.
type MockCommand[Req any, Res any] struct{ mock.Mock }

func NewMockCommand[Req any, Res any](t testingT) *MockCommand[Req, Res] {
	m := &MockCommand[Req, Res]{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCommand[Req, Res]) Execute(ctx context.Context, req Req) (Res, error) {
	args := m.Called(ctx, req)
	var zero Res
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(Res), args.Error(1)
}

var _ command.Command[struct{}, struct{}] = (*MockCommand[struct{}, struct{}])(nil)
