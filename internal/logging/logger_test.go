package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/term"
)

func newTestLogger(t *testing.T, verbose bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	term.Configure(config.ColorNever)
	var out, errOut bytes.Buffer
	return New(&out, &errOut, verbose), &out, &errOut
}

func TestLogger_Levels(t *testing.T) {
	l, out, errOut := newTestLogger(t, false)
	l.Info("found %d files", 3)
	l.Success("copied")
	l.Warn("careful")
	l.Error("broken: %s", "disk")
	l.Debug("hidden")

	assert.Contains(t, out.String(), "[INFO] found 3 files")
	assert.Contains(t, out.String(), "[SUCCESS] copied")
	assert.Contains(t, out.String(), "[WARN] careful")
	assert.NotContains(t, out.String(), "broken")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, errOut.String(), "[ERROR] broken: disk")
}

func TestLogger_DebugWhenVerbose(t *testing.T) {
	l, out, _ := newTestLogger(t, true)
	assert.True(t, l.Verbose())
	l.Debug("width %d", 4)
	assert.Contains(t, out.String(), "[DEBUG] width 4")
}

func TestLogger_With(t *testing.T) {
	l, out, _ := newTestLogger(t, false)
	l.With("run", "abc").Info("started")
	assert.Contains(t, out.String(), "started")
	assert.Contains(t, out.String(), "run=abc")
}

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "reviewtool.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Info("to file")
	l.Success("done")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"level":"info"`)
	assert.Contains(t, string(b), `"message":"to file"`)
	assert.Contains(t, string(b), `"level":"success"`)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	l.Error("nothing")
	assert.NoError(t, l.Close())
}
