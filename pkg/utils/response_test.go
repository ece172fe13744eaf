package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	t.Run("Payload encoded", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RespondWithJSON(rr, http.StatusOK, map[string]string{"key": "value"})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "value", body["key"])
	})

	t.Run("Nil payload leaves empty body", func(t *testing.T) {
		rr := httptest.NewRecorder()

		RespondWithJSON(rr, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func TestRespondWithError(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithError(rr, http.StatusNotFound, "not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp Response
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "not found", resp.Message)
}
