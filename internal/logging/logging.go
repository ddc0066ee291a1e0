// Package logging holds the process-wide debug logger. It is silent until
// Configure routes it somewhere.
package logging

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu   sync.RWMutex
	root = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
)

// Configure replaces the root logger. Verbose enables debug output.
func Configure(w io.Writer, verbose bool) {
	if w == nil {
		w = io.Discard
	}
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	mu.Lock()
	defer mu.Unlock()
	root = log.NewWithOptions(w, log.Options{Level: level})
}

// Named returns a logger whose lines carry the given prefix.
func Named(prefix string) *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.WithPrefix(prefix)
}
