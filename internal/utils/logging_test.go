package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerTeesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "tabprep.log")
	console := &bytes.Buffer{}
	l := newLogger(logFile, zapcore.AddSync(console))
	l.Info("loaded", zap.Int("rows", 3))
	_ = l.Sync()
	assert.Contains(t, console.String(), `"msg":"loaded"`)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"loaded"`)
	assert.Contains(t, string(content), `"rows":3`)

	assert.NotNil(t, Logger())
	assert.Same(t, Logger(), Logger())

	/*
		without LOG_FILE only the console stream is written
	*/
	console.Reset()
	l = newLogger("", zapcore.AddSync(console))
	l.Info("split", zap.Int("train", 7))
	assert.Contains(t, console.String(), `"train":7`)
}

func TestCounters(t *testing.T) {
	reader := &ReadCounter{Reader: strings.NewReader("hello world")}
	buf := &bytes.Buffer{}
	writer := &WriterCounter{Writer: buf}
	n, err := buf.ReadFrom(reader)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, int64(11), reader.Count)

	_, err = writer.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), writer.Count)
}
