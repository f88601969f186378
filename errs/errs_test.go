package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("age", ErrUnknownField)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.Contains(t, err.Error(), "age")
	assert.Contains(t, err.Error(), "unknown field")
}

func TestDecodeError(t *testing.T) {
	err := NewDecodef("count", ErrBlockLengthMismatch, "want %d got %d", 12, 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlockLengthMismatch))
	assert.Contains(t, err.Error(), "want 12 got 9")
}

func TestEncodeError(t *testing.T) {
	err := NewEncode("id", ErrHeterogeneousRecord)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeterogeneousRecord))
}

func TestValidationError_MissingCollaborator(t *testing.T) {
	err := NewValidation("", ErrMissingCollaborator)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCollaborator))
}

func TestFileError(t *testing.T) {
	underlying := errors.New("no such file or directory")
	err := NewFile("/tmp/x.jonx", underlying)
	require.Error(t, err)
	assert.True(t, errors.Is(err, underlying))
	assert.Contains(t, err.Error(), "/tmp/x.jonx")
}

func TestErrorKinds_AreDistinguishable(t *testing.T) {
	var v *ValidationError
	var d *DecodeError
	var e *EncodeError
	var f *FileError

	err := error(NewValidation("x", ErrEmptyColumn))
	assert.True(t, errors.As(err, &v))
	assert.False(t, errors.As(err, &d))
	assert.False(t, errors.As(err, &e))
	assert.False(t, errors.As(err, &f))
}
