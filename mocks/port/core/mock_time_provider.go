package core

import (
	time "time"

	core "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	mock "github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock type for the TimeProvider type
type MockTimeProvider struct {
	mock.Mock
}

// Now provides a mock function with no fields
func (_m *MockTimeProvider) Now() time.Time {
	ret := _m.Called()
	return ret.Get(0).(time.Time)
}

// Since provides a mock function with given fields: t
func (_m *MockTimeProvider) Since(t time.Time) core.Duration {
	ret := _m.Called(t)
	return ret.Get(0).(core.Duration)
}

// Location provides a mock function with no fields
func (_m *MockTimeProvider) Location() *time.Location {
	ret := _m.Called()
	return ret.Get(0).(*time.Location)
}

// NewMockTimeProvider creates a new instance of MockTimeProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// NewFixedTimeProvider returns a MockTimeProvider whose Now always returns now
// and whose Location is the location of now
func NewFixedTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}, now time.Time) *MockTimeProvider {
	m := NewMockTimeProvider(t)
	m.On("Now").Return(now).Maybe()
	m.On("Location").Return(now.Location()).Maybe()
	return m
}
