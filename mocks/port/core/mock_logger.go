package core

import (
	core "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	mock "github.com/stretchr/testify/mock"
)

// MockLogger is a mock type for the Logger type
type MockLogger struct {
	mock.Mock
}

// Debug provides a mock function with given fields: message, fields
func (_m *MockLogger) Debug(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Info provides a mock function with given fields: message, fields
func (_m *MockLogger) Info(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Warn provides a mock function with given fields: message, fields
func (_m *MockLogger) Warn(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Error provides a mock function with given fields: message, fields
func (_m *MockLogger) Error(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Flush provides a mock function with no fields
func (_m *MockLogger) Flush() error {
	ret := _m.Called()
	return ret.Error(0)
}

// GetLevel provides a mock function with no fields
func (_m *MockLogger) GetLevel() core.LogLevel {
	ret := _m.Called()
	return ret.Get(0).(core.LogLevel)
}

// SetLevel provides a mock function with given fields: level
func (_m *MockLogger) SetLevel(level core.LogLevel) {
	_m.Called(level)
}

// NewMockLogger creates a new instance of MockLogger. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// NewQuietLogger returns a MockLogger that accepts every log call
func NewQuietLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := NewMockLogger(t)
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}
