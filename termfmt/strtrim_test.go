package termfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimToRectShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "42", trimToRect("42", 10, 80))
	assert.Equal(t, "a\nb", trimToRect("a\nb", 10, 80))
}

func TestTrimToRectCutsWidth(t *testing.T) {
	long := strings.Repeat("x", 120)
	got := trimToRect(long, 10, 100)
	assert.Equal(t, strings.Repeat("x", 100)+"[...]", got)
}

func TestTrimToRectCutsHeight(t *testing.T) {
	in := strings.TrimSuffix(strings.Repeat("line\n", 30), "\n")
	got := trimToRect(in, 3, 80)
	assert.Equal(t, "line\nline\nline\n[...]", got)
}
