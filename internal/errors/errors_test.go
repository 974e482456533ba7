package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP_CollapsesAuthErrors(t *testing.T) {
	authErrs := []error{
		ErrUserNotFound,
		ErrInvalidCredentials,
		ErrInvalidToken,
		ErrTokenExpired,
		ErrInvalidIssuer,
		ErrMalformedClaims,
	}

	first := MapErrorToHTTP(authErrs[0])
	for _, err := range authErrs {
		mapped := MapErrorToHTTP(err)
		assert.Equal(t, http.StatusUnauthorized, mapped.StatusCode)
		// Identical body for every auth failure, no user enumeration.
		assert.Equal(t, first.ToErrorResponse(), mapped.ToErrorResponse())
	}
}

func TestMapErrorToHTTP_Validation(t *testing.T) {
	err := fmt.Errorf("%w: title must not be empty", ErrValidation)
	mapped := MapErrorToHTTP(err)
	assert.Equal(t, http.StatusBadRequest, mapped.StatusCode)
}

func TestMapErrorToHTTP_Persistence(t *testing.T) {
	cause := stderrors.New("duplicate entry '42' for key 'PRIMARY'")
	err := NewPersistenceError("create", "post", cause)

	mapped := MapErrorToHTTP(err)
	assert.Equal(t, http.StatusInternalServerError, mapped.StatusCode)
	// Driver internals stay out of the response but remain unwrappable.
	assert.NotContains(t, mapped.Message, "duplicate entry")
	assert.ErrorIs(t, err, cause)
}

func TestMapErrorToHTTP_Unknown(t *testing.T) {
	mapped := MapErrorToHTTP(stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, mapped.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
}
