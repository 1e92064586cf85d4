package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadMaskedStopsAtEnter(t *testing.T) {
	var out bytes.Buffer
	got := readMasked(strings.NewReader("secret\rtrailing"), &out)

	assert.Equal(t, []byte("secret"), got)
	assert.Equal(t, strings.Repeat("*", 6)+"\n", out.String())
}

func TestReadMaskedBackspace(t *testing.T) {
	var out bytes.Buffer
	got := readMasked(strings.NewReader("ab\x7fc\n"), &out)

	assert.Equal(t, []byte("ac"), got)
}

func TestReadMaskedReturnsOnExhaustedInput(t *testing.T) {
	// Input ending without a newline must terminate with what was read,
	// not loop forever on the failed read.
	var out bytes.Buffer
	got := readMasked(strings.NewReader("abc"), &out)

	assert.Equal(t, []byte("abc"), got)
}

func TestReadMaskedEmptyInput(t *testing.T) {
	var out bytes.Buffer
	got := readMasked(strings.NewReader(""), &out)

	assert.Empty(t, got)
}
