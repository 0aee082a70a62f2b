package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanicRunsCleanupAndWritesReport(t *testing.T) {
	t.Chdir(t.TempDir())

	cleaned := false
	func() {
		defer RecoverPanic("test", func() { cleaned = true })
		panic("boom")
	}()

	assert.True(t, cleaned)
	reports, err := filepath.Glob("dropgrip-panic-test-*.log")
	require.NoError(t, err)
	require.Len(t, reports, 1)

	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Panic in test: boom")
}

func TestRecoverPanicWithoutPanic(t *testing.T) {
	called := false
	func() {
		defer RecoverPanic("quiet", func() { called = true })
	}()
	assert.False(t, called)
}

func TestSetup(t *testing.T) {
	Setup(filepath.Join(t.TempDir(), "dropgrip.log"), true)
	assert.True(t, Initialized())
}
