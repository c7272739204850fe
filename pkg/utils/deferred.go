// Package utils holds small helpers shared by the command line entrypoint.
package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter buffers writes so they can be replayed later, typically
// log output held back while the terminal is in raw mode.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer. It never fails.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Len returns the number of buffered bytes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Flush writes the buffered output to w one line at a time and empties the
// buffer. zerolog writers expect one event per Write, and each buffered line
// is one event.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for d.buf.Len() > 0 {
		line, err := d.buf.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(line); werr != nil {
				return fmt.Errorf("flush deferred output: %w", werr)
			}
		}
		if err != nil {
			break
		}
	}

	d.buf.Reset()
	return nil
}
