package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreUnavailableError_WrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewStoreUnavailableError("failed to list unverified accounts", cause)

	assert.True(t, IsStoreUnavailableError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, "connection refused", err.Details)
}

func TestTypePredicates_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("delete account 7: %w", NewInvalidStateError("account is already verified"))

	assert.True(t, IsInvalidStateError(err))
	assert.False(t, IsNotFoundError(err))
	assert.Equal(t, http.StatusConflict, GetAppError(err).Code)
}

func TestNotifierFailure(t *testing.T) {
	err := NewNotifierFailureError("reminder not delivered", stderrors.New("smtp: 451"))

	assert.True(t, IsNotifierFailure(err))
	assert.Contains(t, err.Error(), "notifier_failure")
	assert.Contains(t, err.Error(), "smtp: 451")
}

func TestGetAppError_PlainError(t *testing.T) {
	assert.Nil(t, GetAppError(stderrors.New("boom")))
	assert.False(t, IsAppError(nil))
}

func TestStatusCode_MatchesConstructors(t *testing.T) {
	for _, e := range []*AppError{
		NewValidationError("x"),
		NewNotFoundError("x"),
		NewInvalidStateError("x"),
		NewUnauthorizedError("x"),
		NewStoreUnavailableError("x", nil),
		NewNotifierFailureError("x", nil),
		NewInternalError("x"),
	} {
		assert.Equal(t, e.Code, StatusCode(e.Type), string(e.Type))
	}
}
