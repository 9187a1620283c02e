// Package logger prints pipeline progress to stderr. Output is off
// by default and enabled with the --verbose flag, so command output
// on stdout stays machine-readable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose turns verbose output on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log output. The default is os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func emit(lvl level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "["+string(lvl)+"] "+format+"\n", args...)
}

// Section marks the start of a pipeline stage.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Debug logs fine-grained progress, one line per item.
func Debug(format string, args ...any) { emit(levelDebug, format, args...) }

// Info logs stage-level progress.
func Info(format string, args ...any) { emit(levelInfo, format, args...) }

// Warn logs recoverable problems, such as a file that was skipped.
func Warn(format string, args ...any) { emit(levelWarn, format, args...) }
