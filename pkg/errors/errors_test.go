package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromErrorPassesThroughTypedErrors(t *testing.T) {
	err := Clone(ErrDuplicateEnrollment, "student already enrolled")
	resolved := FromError(err)
	require.Equal(t, "DUPLICATE_ENROLLMENT", resolved.Code)
	require.Equal(t, http.StatusConflict, resolved.Status)
	require.Equal(t, "student already enrolled", resolved.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	resolved := FromError(errors.New("boom"))
	require.Equal(t, ErrInternal.Code, resolved.Code)
	require.Equal(t, http.StatusInternalServerError, resolved.Status)
	require.ErrorContains(t, resolved, "boom")
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "session not found")
	require.Equal(t, "session not found", clone.Message)
	require.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestErrorSerializesCodeAndMessageOnly(t *testing.T) {
	body, err := json.Marshal(Clone(ErrNotFound, "branch not found"))
	require.NoError(t, err)
	require.JSONEq(t, `{"code":"NOT_FOUND","message":"branch not found"}`, string(body))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, ErrInternal.Code, ErrInternal.Status, "query failed")
	require.ErrorIs(t, err, cause)
}
