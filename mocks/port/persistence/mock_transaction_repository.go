package persistence

import (
	context "context"

	entity "github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepository type
type MockTransactionRepository struct {
	mock.Mock
}

// GetAllByUser provides a mock function with given fields: ctx, userID
func (_m *MockTransactionRepository) GetAllByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	ret := _m.Called(ctx, userID)
	var r0 []*entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, userID, id
func (_m *MockTransactionRepository) GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, userID, id)
	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// GetByGroupID provides a mock function with given fields: ctx, userID, groupID
func (_m *MockTransactionRepository) GetByGroupID(ctx context.Context, userID, groupID string) ([]*entity.Transaction, error) {
	ret := _m.Called(ctx, userID, groupID)
	var r0 []*entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, transaction
func (_m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	ret := _m.Called(ctx, transaction)
	return ret.Error(0)
}

// CreateBatch provides a mock function with given fields: ctx, transactions
func (_m *MockTransactionRepository) CreateBatch(ctx context.Context, transactions []*entity.Transaction) error {
	ret := _m.Called(ctx, transactions)
	return ret.Error(0)
}

// Update provides a mock function with given fields: ctx, userID, id, patch
func (_m *MockTransactionRepository) Update(ctx context.Context, userID, id string, patch entity.TransactionPatch) (*entity.Transaction, error) {
	ret := _m.Called(ctx, userID, id, patch)
	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, userID, id
func (_m *MockTransactionRepository) Delete(ctx context.Context, userID, id string) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// DeleteByGroupID provides a mock function with given fields: ctx, userID, groupID
func (_m *MockTransactionRepository) DeleteByGroupID(ctx context.Context, userID, groupID string) (int64, error) {
	ret := _m.Called(ctx, userID, groupID)
	return ret.Get(0).(int64), ret.Error(1)
}

// NewMockTransactionRepository creates a new instance of MockTransactionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
