package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every Write call separately.
type recorder struct {
	writes []string
	err    error
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func TestDeferredWriter_FlushLineByLine(t *testing.T) {
	var d DeferredWriter
	_, _ = d.Write([]byte("{\"level\":\"info\"}\n{\"level\":"))
	_, _ = d.Write([]byte("\"warn\"}\ntrailing"))

	var r recorder
	require.NoError(t, d.Flush(&r))

	assert.Equal(t, []string{
		"{\"level\":\"info\"}\n",
		"{\"level\":\"warn\"}\n",
		"trailing",
	}, r.writes)
	assert.Equal(t, 0, d.Len())
}

func TestDeferredWriter_FlushEmpty(t *testing.T) {
	var (
		d   DeferredWriter
		out bytes.Buffer
	)
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String())
}

func TestDeferredWriter_FlushError(t *testing.T) {
	var d DeferredWriter
	_, _ = d.Write([]byte("line\n"))

	err := d.Flush(&recorder{err: errors.New("closed")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush deferred output")
}
