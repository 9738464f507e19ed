package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithWriter_ComponentAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel, "renderer")
	l.Infof("hidden")
	l.Warnf("shown %s", "gas_log")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component":"renderer"`)
	assert.Contains(t, out, "shown gas_log")
}

func TestConfigure_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "energydash.log")
	closeFn, err := Configure(Options{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	defer func() {
		_, _ = Configure(Options{})
	}()

	New("file-test").Infof("written to file")
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "written to file")
}

func TestConfigure_BadLevel(t *testing.T) {
	_, err := Configure(Options{Level: "loud"})
	assert.Error(t, err)
}
