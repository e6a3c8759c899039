package persistence

import (
	context "context"

	entity "github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock type for the CategoryRepository type
type MockCategoryRepository struct {
	mock.Mock
}

// GetAllByUser provides a mock function with given fields: ctx, userID
func (_m *MockCategoryRepository) GetAllByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	ret := _m.Called(ctx, userID)
	var r0 []*entity.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Category)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, category
func (_m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

// Delete provides a mock function with given fields: ctx, userID, id
func (_m *MockCategoryRepository) Delete(ctx context.Context, userID, id string) error {
	ret := _m.Called(ctx, userID, id)
	return ret.Error(0)
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockSettingsRepository is a mock type for the SettingsRepository type
type MockSettingsRepository struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, userID
func (_m *MockSettingsRepository) Get(ctx context.Context, userID string) (*entity.UserSettings, error) {
	ret := _m.Called(ctx, userID)
	var r0 *entity.UserSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.UserSettings)
	}
	return r0, ret.Error(1)
}

// Save provides a mock function with given fields: ctx, settings
func (_m *MockSettingsRepository) Save(ctx context.Context, settings *entity.UserSettings) error {
	ret := _m.Called(ctx, settings)
	return ret.Error(0)
}

// NewMockSettingsRepository creates a new instance of MockSettingsRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockSettingsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSettingsRepository {
	m := &MockSettingsRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
