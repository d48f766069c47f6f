package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestIs(t *testing.T) {
	err1 := New("error 1")
	err2 := New("error 2")
	wrapped := Wrap(err1, "wrapped")

	assert.True(t, Is(wrapped, err1))
	assert.False(t, Is(wrapped, err2))
	assert.False(t, Is(nil, err1))
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestSentinelWrapping(t *testing.T) {
	err := Wrapf(ErrRateLimited, "record %s", "doi:10.5072/FK2/ABC")

	assert.True(t, Is(err, ErrRateLimited))
	assert.False(t, Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "doi:10.5072/FK2/ABC")
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(Wrap(ErrNotFound, "record lookup")))

	// String-based fallback for errors arriving from remote responses
	assert.True(t, IsNotFoundError(New("record xyz not found")))
	assert.False(t, IsNotFoundError(New("connection refused")))
}

func TestIsRateLimitedError(t *testing.T) {
	assert.False(t, IsRateLimitedError(nil))
	assert.True(t, IsRateLimitedError(ErrRateLimited))
	assert.True(t, IsRateLimitedError(Wrap(ErrRateLimited, "apply")))
	assert.False(t, IsRateLimitedError(ErrServerUnavailable))
}

func TestIsUnauthorizedError(t *testing.T) {
	assert.True(t, IsUnauthorizedError(Wrap(ErrUnauthorized, "fetch")))
	assert.False(t, IsUnauthorizedError(ErrValidation))
	assert.False(t, IsUnauthorizedError(nil))
}

func TestIsValidationError(t *testing.T) {
	err := NewValidationError("field %s rejected", "new_title")
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "new_title")
}

func TestIsConfigError(t *testing.T) {
	err := NewConfigError("batch size must be positive, got %d", -1)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "-1")
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrValidation,
		ErrRateLimited,
		ErrServerUnavailable,
		ErrConfig,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "sentinel %v should not match %v", a, b)
		}
	}
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	// Format with stack trace
	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestErrorChaining(t *testing.T) {
	base := ErrServerUnavailable

	err := Wrap(base, "apply record")
	err = WithHint(err, "check registry availability")
	err = Wrap(err, "batch run")

	assert.True(t, Is(err, base))
	assert.Contains(t, err.Error(), "batch run")
	assert.Contains(t, err.Error(), "apply record")

	hints := GetAllHints(err)
	assert.Contains(t, hints, "check registry availability")
}

func ExampleWrap() {
	baseErr := New("connection failed")
	err := Wrap(baseErr, "failed to reach registry")
	fmt.Println(err)
	// Output: failed to reach registry: connection failed
}
