// Package logger provides verbose logging for the Synergy CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to follow catalog loading, search pruning and
// store queries. Progress lines for long enumerations can be enabled
// on their own with SetProgress.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu       sync.RWMutex
	verbose  bool
	progress bool
	output   io.Writer = os.Stderr
	now                = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetProgress enables or disables progress lines independently of verbose mode.
func SetProgress(p bool) {
	mu.Lock()
	defer mu.Unlock()
	progress = p
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(enabled bool, prefix, format string, args ...any) {
	if enabled {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	printf(verbose, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	printf(verbose, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	printf(verbose, "[WARN] ", format, args...)
}

// Progress prints a timestamped progress line if progress or verbose mode is enabled.
func Progress(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	printf(verbose || progress, "["+now().Format("15:04:05")+"] ", format, args...)
}

// Timed logs the start of an operation and returns a func that logs its duration.
//
//	defer logger.Timed("loading store")()
func Timed(operation string) func() {
	start := now()
	Debug("%s...", operation)
	return func() {
		Debug("%s took %s", operation, now().Sub(start).Round(time.Millisecond))
	}
}
