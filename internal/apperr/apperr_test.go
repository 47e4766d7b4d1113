package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindInput:        http.StatusBadRequest,
		KindAuth:         http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindUpstream:     http.StatusInternalServerError,
		KindVerification: http.StatusOK,
		KindUnknown:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), "kind %d", kind)
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("create listing: %w", NotFound("Book not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Book not found", PublicMessage(err))
}

func TestUpstreamHidesCause(t *testing.T) {
	cause := errors.New("smtp: 535 authentication failed")
	err := Upstream("send otp email", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, GenericMessage, PublicMessage(err))
	assert.Equal(t, GenericMessage, PublicMessage(errors.New("boom")))
}
