package repository

import (
	"strings"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// ErrorClassifier provides methods to classify database errors by driver message
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

func messageContains(err error, fragments ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// Classify returns the type of error, or "" when the error is not recognized
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsConstraintError(err):
		return ConstraintError
	}
	return ""
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return messageContains(err, "duplicate key", "unique constraint", "duplicate entry", "sqlstate 23505")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	return messageContains(err,
		"connection reset",
		"connection refused",
		"timeout",
		"too many connections",
		"server closed",
		"broken pipe",
		"eof",
	)
}

// IsLockError checks if the error is due to locking
func (c *ErrorClassifier) IsLockError(err error) bool {
	return messageContains(err,
		"deadlock",
		"lock wait timeout",
		"lock timeout",
		"could not serialize access",
		"serialization failure",
	)
}

// IsRetryable reports whether repeating the statement may succeed
func (c *ErrorClassifier) IsRetryable(err error) bool {
	return c.IsTransientError(err) || c.IsLockError(err)
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	return messageContains(err, "connection", "dial", "network", "no such host") || c.IsTransientError(err)
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	return messageContains(err, "constraint", "violates", "foreign key", "not null") || c.IsDuplicateKeyError(err)
}
