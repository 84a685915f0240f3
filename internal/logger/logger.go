// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides verbose logging for the mcp-explorer pipeline.
// Adapter-level failures are recoverable by design, so they are reported
// here rather than returned as errors; enabling verbose mode surfaces them
// on stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput sets the output writer for verbose logs. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[debug] "+format+"\n", args...)
	}
}

// Warn prints a warning regardless of verbose mode.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "warning: "+format+"\n", args...)
}
