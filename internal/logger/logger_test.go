package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Init("debug", "json", &buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	WithRequest("rpc", "abc").Info("built")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rpc", entry["component"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "built", entry["msg"])
}

func TestInitBadLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := Init("loud", "text", &buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "invalid_level=loud")
	assert.Same(t, log, Get())
}
