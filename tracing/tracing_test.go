package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan_NoProvider(t *testing.T) {
	_, span := StartSpan(context.Background(), "noop", KindInternal)
	span.WithAttributes(map[string]string{"k": "v"}).WithInt("pid", 1)
	EndSpan(span, errors.New("boom"))
	EndSpan(nil, nil)
	var nilSpan *Span
	assert.Nil(t, nilSpan.WithInt("pid", 1))
}

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("ossim", "0.0.1", fname))

	_, span := StartSpan(context.Background(), "scheduler.quantum", KindInternal)
	span.WithAttributes(map[string]string{"process.name": "p1"})
	EndSpan(span, nil)
	require.NoError(t, Shutdown(context.Background()))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
