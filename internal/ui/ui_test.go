package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(t *testing.T, theme string) {
	t.Helper()
	SetTheme(theme)
	SetColorMode(ColorNever)
	t.Cleanup(func() {
		SetTheme("classic")
		SetColorMode(ColorAuto)
	})
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "██████████░░░░░░░░░░  50%", ProgressBar(1, 2, 20))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestPanel_AlignsColoredLines(t *testing.T) {
	plain(t, "mono")
	SetColorMode(ColorAlways)

	var buf bytes.Buffer
	Panel(&buf, []string{"short", "\033[32mlonger line\033[0m", "[x] ok"})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "+-------------+", lines[0])
	assert.Equal(t, "| short       |", lines[1])
	assert.Equal(t, "| [x] ok      |", lines[3])
	assert.Equal(t, lines[0], lines[4])
}

func TestColorModes(t *testing.T) {
	plain(t, "classic")
	assert.Equal(t, "x", C(fgRed, "x"))

	SetColorMode(ColorAlways)
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))

	SetTheme("mono")
	assert.Equal(t, "x", C(fgRed, "x"), "mono never colors")
}

func TestMessages(t *testing.T) {
	plain(t, "classic")
	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	Note(&buf, "nothing to add")
	assert.Equal(t, "✔ added\n✖ boom\nnothing to add\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	got := Truncate(strings.Repeat("a", 100), 80)
	assert.Len(t, got, 80)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestParseColorMode(t *testing.T) {
	assert.Equal(t, ColorAlways, ParseColorMode("always"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode("auto"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}
