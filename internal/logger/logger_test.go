package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})

	t.Run("debug suppressed when not verbose", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)
		Debug("hidden %d", 1)
		assert.Empty(t, buf.String())
	})

	t.Run("debug printed when verbose", func(t *testing.T) {
		buf.Reset()
		SetVerbose(true)
		Debug("visible %d", 2)
		assert.Equal(t, "[DEBUG] visible 2\n", buf.String())
	})

	t.Run("warn printed regardless of verbose", func(t *testing.T) {
		buf.Reset()
		SetVerbose(false)
		Warn("snapshot unreadable: %s", "examples.json")
		assert.Contains(t, buf.String(), "[WARN] snapshot unreadable: examples.json")
	})
}
