package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemTrailLoggerKeyValueArgs(t *testing.T) {
	var buf bytes.Buffer
	l := NewMemTrailLogger(&LoggerConfig{
		Level:     LogLevelDebug,
		Format:    "json",
		Output:    &buf,
		Component: "agent",
	})

	l.WithTurn("pat_A", "turn_001").Info("Mutation committed", "entity", "advil", "chain_length", 2)

	out := buf.String()
	assert.Contains(t, out, `"component":"agent"`)
	assert.Contains(t, out, `"subject_id":"pat_A"`)
	assert.Contains(t, out, `"turn_id":"turn_001"`)
	assert.Contains(t, out, `"entity":"advil"`)
	assert.Contains(t, out, `"chain_length":2`)
	assert.NotContains(t, out, "EXTRA", "key/value args must not be treated as printf arguments")
}

func TestMemTrailLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewMemTrailLogger(&LoggerConfig{Level: LogLevelError, Format: "text", Output: &buf})

	l.Info("suppressed", "k", "v")
	assert.Empty(t, buf.String())

	l.Error("surfaced", "k", "v")
	assert.Contains(t, buf.String(), "surfaced")
}
