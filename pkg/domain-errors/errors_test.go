package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeInvalidInput, "domain is required")
		assert.True(t, HasCode(err, CodeInvalidInput))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches wrapped code", func(t *testing.T) {
		inner := New(CodeInvalidInput, "domain is required")
		outer := Wrap(inner, CodeBadRequest, "invalid request")
		assert.True(t, HasCode(outer, CodeBadRequest))
		assert.True(t, HasCode(outer, CodeInvalidInput))
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeNotFound, "missing"))
		assert.True(t, Is(err, CodeNotFound))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "nothing to wrap"))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:          http.StatusBadRequest,
		CodeInvalidInput:        http.StatusBadRequest,
		CodeValidation:          http.StatusBadRequest,
		CodeNotFound:            http.StatusNotFound,
		CodeUpstreamUnavailable: http.StatusBadGateway,
		CodeTimeout:             http.StatusGatewayTimeout,
		CodeInternal:            http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, ToHTTPStatus(code), "code %s", code)
	}
}
