package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToOut(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info("gateway started", "port", 3000)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "gateway started", entry["msg"])
	assert.Equal(t, float64(3000), entry["port"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Info("suppressed")
	assert.Zero(t, buf.Len())

	log.Warn("emitted")
	assert.NotZero(t, buf.Len())
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty")

	log.Debug("suppressed")
	assert.Zero(t, buf.Len())

	log.Info("emitted")
	assert.NotZero(t, buf.Len())
}
