package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, true)

	c.Success("%s - Success", "Plugin Info")
	c.Error("  Error: %s", "boom")
	c.Warning("No pipelines")
	c.Info("Testing %s...", "List")
	c.Line("  Status: %d OK", 200)
	c.Detail("    id -> pipeline_name || name")
	c.Note("  next")

	want := strings.Join([]string{
		"✓ Plugin Info - Success",
		"✗   Error: boom",
		"⚠ No pipelines",
		"ℹ Testing List...",
		"  Status: 200 OK",
		"    id -> pipeline_name || name",
		"  next",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestHeadingHasLeadingBlankLine(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Heading("Summary")
	assert.True(t, strings.HasPrefix(buf.String(), "\n"), "got %q", buf.String())
	assert.Contains(t, buf.String(), "=== Summary ===")
}

func TestPercentInArgument(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Line("  Message: %s", "100% done")
	assert.Equal(t, "  Message: 100% done\n", buf.String())
}

func TestMultilineKeepsIndent(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Error("  %s", "first\n  second")
	assert.Equal(t, "✗   first\n  second\n", buf.String())
}

func TestBannerContainsTitle(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Banner("Integration Test")
	assert.Contains(t, buf.String(), "Integration Test")
}

func TestDiscard(t *testing.T) {
	var p Printer = Discard()
	assert.NotPanics(t, func() { p.Error("ignored %d", 1) })
}
