package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "crawlreceipt/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantStatus      int
		wantCode        string
		wantDescription string
	}{
		{
			name:       "internal error hides its message",
			err:        dErrors.New(dErrors.CodeInternal, "template failed"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
		{
			name:            "bad request carries description",
			err:             dErrors.New(dErrors.CodeBadRequest, "domain parameter is required"),
			wantStatus:      http.StatusBadRequest,
			wantCode:        "bad_request",
			wantDescription: "domain parameter is required",
		},
		{
			name:            "upstream failure is bad gateway",
			err:             dErrors.Wrap(errors.New("dial tcp: refused"), dErrors.CodeUpstreamUnavailable, "robots.txt unreachable"),
			wantStatus:      http.StatusBadGateway,
			wantCode:        "upstream_unavailable",
			wantDescription: "robots.txt unreachable",
		},
		{
			name:       "uncoded error is internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			desc, ok := body["error_description"]
			if tt.wantDescription == "" {
				assert.False(t, ok, "description leaked: %q", desc)
			} else {
				assert.Equal(t, tt.wantDescription, desc)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]int{"pages": 12})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"pages":12}`, w.Body.String())
}
