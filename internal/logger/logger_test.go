package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseToggle(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebugSuppressedWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	SetVerbose(false)
	SetOutput(&buf)
	defer SetOutput(nil)

	Debug("should not appear")
	assert.Empty(t, buf.String())
}

func TestDebugEmittedWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetVerbose(true)
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
		SetOutput(nil)
	}()

	Debug("pipeline step %d", 1)
	assert.Contains(t, buf.String(), "pipeline step 1")
}

func TestWarnAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	SetVerbose(false)
	SetOutput(&buf)
	defer SetOutput(nil)

	Warn("something odd: %s", "detail")
	assert.Contains(t, buf.String(), "something odd: detail")
}
