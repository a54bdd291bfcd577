package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- scripted randomness ---

// pickFunc adapts a function to Intner.
type pickFunc func(n int) int

func (f pickFunc) IntN(n int) int { return f(n) }

func fixedRand(f func(n int) int) RandSource {
	return func() Intner { return pickFunc(f) }
}

func pickFirst(int) int  { return 0 }
func pickLast(n int) int { return n - 1 }
