package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestVerboseToggle(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	buf := reset(t)

	Debug("scanned %d files", 3)
	Info("indexed %s", "a.txt")
	Warn("skipped %s", "b.bin")

	assert.Equal(t,
		"[DEBUG] scanned 3 files\n[INFO] indexed a.txt\n[WARN] skipped b.bin\n",
		buf.String())
}

func TestSection(t *testing.T) {
	buf := reset(t)

	Section("Ingest")

	assert.Equal(t, "\n=== Ingest ===\n", buf.String())
}

func TestSilentWhenNotVerbose(t *testing.T) {
	buf := reset(t)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Zero(t, buf.Len())
}

func TestConcurrentUse(t *testing.T) {
	reset(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Info("worker %d", n)
			IsVerbose()
		}(i)
	}
	wg.Wait()
}
