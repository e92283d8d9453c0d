package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstage/soundstage/internal/modules/event/domain"
)

func TestWriteEventError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"event not found", domain.ErrEventNotFound, http.StatusNotFound},
		{"location not found", domain.ErrLocationNotFound, http.StatusNotFound},
		{"unexpected error hides details", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeEventError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}

	t.Run("quotes in the message stay valid JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeEventError(rec, fmt.Errorf(`description "live at "the" club" too long: %w`, domain.ErrValidation))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], `"the"`)
	})
}
