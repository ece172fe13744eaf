package codestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		transactionID int
		expected      string
	}{
		{
			name:          "Simple username",
			username:      "ivan",
			transactionID: 101,
			expected:      "transfer:confirm:ivan:101",
		},
		{
			name:          "Username with separator characters",
			username:      "ivan:petrov",
			transactionID: 7,
			expected:      "transfer:confirm:ivan:petrov:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, key(tt.username, tt.transactionID))
		})
	}
}

func TestMapVerifyOutcome(t *testing.T) {
	tests := []struct {
		name        string
		raw         any
		expected    VerificationResult
		expectError bool
	}{
		{
			name:     "Code consumed",
			raw:      "OK",
			expected: Success,
		},
		{
			name:     "Wrong code",
			raw:      "MISMATCH",
			expected: CodeMismatch,
		},
		{
			name:     "Expired or already consumed",
			raw:      "NOT_FOUND",
			expected: CodeNotFound,
		},
		{
			name:        "Unknown outcome",
			raw:         "SOMETHING",
			expectError: true,
		},
		{
			name:        "Non-string response",
			raw:         int64(1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mapVerifyOutcome(tt.raw)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNew(t *testing.T) {
	store := New(nil, 5*time.Minute)

	assert.NotNil(t, store)
	assert.Equal(t, 5*time.Minute, store.ttl)
}
