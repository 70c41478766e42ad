package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggedPrefixesLines(t *testing.T) {
	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	defer SetLogger(nil)

	Tagged("INTERVIEW")("bucket %d closed", 3)

	assert.Equal(t, []string{"[INTERVIEW] bucket 3 closed"}, lines)
}

func TestSetLoggerNilMutes(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("dropped %s", "line") })
}
