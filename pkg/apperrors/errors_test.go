package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrNoActiveSubscription)
	assert.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, appErr.HTTPCode)
	assert.Equal(t, CodeNoActiveSubscription, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestQuotaDenialStatusCodes(t *testing.T) {
	for _, e := range []*AppError{ErrQuotaExceeded, ErrAudioQuotaExceeded, ErrMaxDreamsReached} {
		assert.Equal(t, http.StatusForbidden, e.HTTPCode, e.Code)
	}
}
