package persistence

import (
	context "context"

	persistence "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	mock "github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock type for the UnitOfWork type
type MockUnitOfWork struct {
	mock.Mock
}

// Begin provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	ret := _m.Called(ctx)
	var r0 context.Context
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(context.Context)
	}
	return r0, ret.Error(1)
}

// Commit provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Rollback provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// GetTransactionRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	ret := _m.Called(ctx)
	return ret.Get(0).(persistence.TransactionRepository)
}

// GetCategoryRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetCategoryRepository(ctx context.Context) persistence.CategoryRepository {
	ret := _m.Called(ctx)
	return ret.Get(0).(persistence.CategoryRepository)
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
