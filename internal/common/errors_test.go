package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError_MatchesSentinel(t *testing.T) {
	err := NewNotFoundError("user not found for magic link: %s", "42")

	assert.True(t, errors.Is(err, ErrorNotFound))
	assert.False(t, errors.Is(err, ErrorStorage))
	assert.Equal(t, "user not found for magic link: 42", err.Error())
}

func TestMissingFieldError(t *testing.T) {
	err := fmt.Errorf("hook: %w", &MissingFieldError{Field: "additionalData.displayName"})

	require.True(t, errors.Is(err, ErrorMissingField))

	var mf *MissingFieldError
	require.True(t, errors.As(err, &mf))
	assert.Equal(t, "additionalData.displayName", mf.Field)
	assert.Equal(t, "hook: missing field: additionalData.displayName", err.Error())
}

func TestMissingFieldError_WithReason(t *testing.T) {
	err := &MissingFieldError{Field: "user_id", Reason: "not an integer"}

	assert.ErrorIs(t, err, ErrorMissingField)
	assert.Equal(t, "invalid field: user_id: not an integer", err.Error())
}

func TestStorageError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StorageError{Op: "insert profile", Err: cause}

	assert.True(t, errors.Is(err, ErrorStorage))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrorCommunication))
	assert.Equal(t, "db error: insert profile: connection refused", err.Error())
}

func TestCommunicationError_UnwrapsCause(t *testing.T) {
	cause := errors.New("stream full")
	err := &CommunicationError{Op: "xadd", Err: cause}

	assert.True(t, errors.Is(err, ErrorCommunication))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "communication error: xadd: stream full", err.Error())
}
