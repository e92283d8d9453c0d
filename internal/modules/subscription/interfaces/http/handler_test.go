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

	"github.com/soundstage/soundstage/internal/modules/subscription/domain"
)

func TestWriteSubscriptionError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown plan", domain.ErrUnknownPlan, http.StatusBadRequest},
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"order processed", domain.ErrOrderProcessed, http.StatusConflict},
		{"order expired", domain.ErrOrderExpired, http.StatusConflict},
		{"invalid signature", domain.ErrInvalidSignature, http.StatusBadRequest},
		{"unexpected error hides details", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeSubscriptionError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}

	t.Run("quotes in the message stay valid JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeSubscriptionError(rec, fmt.Errorf(`plan "gold" rejected: %w`, domain.ErrUnknownPlan))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["error"], `"gold"`)
	})
}
