package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelsAndCaller(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Info("order %d created", 7)
	Warning("slow query")
	Error("boom")

	out := buf.String()
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "order 7 created")
	assert.Contains(t, out, "WARNING: ")
	assert.Contains(t, out, "ERROR: ")
	// 调用位置指向调用方而不是 logger 包本身
	assert.Contains(t, out, "logger_test.go")
}

func TestSetupLoggerWritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, SetupLogger(dir))
	t.Cleanup(func() {
		Close()
		SetOutput(os.Stdout)
	})

	Info("hello file")

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
