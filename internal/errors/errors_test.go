package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewStorageError(ErrCodeStoreWriteFailed, "Failed to persist document", cause)

	assert.Equal(t, "STORE_WRITE_FAILED: Failed to persist document (caused by: disk full)", err.Error())
	assert.Equal(t, ErrorTypeStorage, err.Type)
	assert.True(t, stderrors.Is(err, cause))

	plain := NewValidationError(ErrCodeDocumentInvalid, "bad document", nil)
	assert.Equal(t, "DOCUMENT_INVALID: bad document", plain.Error())
}

func TestCodeOfWrappedError(t *testing.T) {
	appErr := NewAIError(ErrCodeRateLimited, "slow down", nil)
	wrapped := fmt.Errorf("enhance summary: %w", appErr)

	assert.Equal(t, ErrCodeRateLimited, CodeOf(wrapped))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain")))
}

func TestLogErrorUnfoldsAppError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelDebug)

	err := NewIOError(ErrCodeFileNotFound, "File not found: resume.json", nil).
		WithContext("path", "resume.json")
	logger.LogError(err, "Failed to load document", "command", "score")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Failed to load document", entry["msg"])
	assert.Equal(t, "io", entry["error_type"])
	assert.Equal(t, ErrCodeFileNotFound, entry["error_code"])
	assert.Equal(t, "resume.json", entry["path"])
	assert.Equal(t, "score", entry["command"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		_, err := New(level)
		assert.NoError(t, err, level)
	}

	_, err := New("verbose")
	assert.EqualError(t, err, "invalid log level: verbose")
}
