package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/smarttasks/internal/model"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1m ago"},
		{59 * time.Minute, "59m ago"},
		{time.Hour, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{6 * 24 * time.Hour, "6d ago"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativeTime(now.Add(-c.ago), now), c.ago.String())
	}

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Local().Format("Jan 2, 2006"), RelativeTime(old, now))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 5))
	assert.Equal(t, "█████ 100%", ProgressBar(2, 2, 5))
	assert.Equal(t, "██████████░░░░░░░░░░  50%", ProgressBar(1, 2, 20))
}

func TestPanel(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	Panel(&buf, []string{"Todos", "a longer line", PriorityBadge(model.PriorityHigh)})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "+---------------+", lines[0])
	assert.Equal(t, "| Todos         |", lines[1])
	assert.Equal(t, "| [high]        |", lines[3])
	assert.Equal(t, lines[0], lines[4])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdef...", Truncate("abcdefghijkl", 9))
	assert.Equal(t, "ééé...", Truncate("éééééééé", 6))
}

func TestPaint(t *testing.T) {
	defer SetColorForcing(false, false)
	var buf bytes.Buffer

	// a buffer is not a terminal
	assert.Equal(t, "x", Paint(&buf, fgRed, "x"))

	SetColorForcing(true, false)
	assert.Equal(t, fgRed+"x"+reset, Paint(&buf, fgRed, "x"))
	assert.Equal(t, "x", Paint(&buf, "", "x"))

	SetColorForcing(true, true)
	assert.Equal(t, "x", Paint(&buf, fgRed, "x"))
}

func TestFailPaintsForItsOwnWriter(t *testing.T) {
	var buf bytes.Buffer
	Fail(&buf, "boom")
	assert.Equal(t, symCross+" boom\n", buf.String())
}

func TestThemeSwitchRestoresColor(t *testing.T) {
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)
	defer SetTheme("classic")

	SetTheme("mono")
	assert.Equal(t, "[high]", PriorityBadge(model.PriorityHigh))

	SetTheme("classic")
	assert.Contains(t, PriorityBadge(model.PriorityHigh), fgMagenta)

	SetTheme("no-such-theme")
	assert.Equal(t, "☐", Current().BoxUnchecked)
}

func TestValidTheme(t *testing.T) {
	for _, name := range Themes {
		assert.True(t, ValidTheme(name), name)
	}
	assert.True(t, ValidTheme("Neon"))
	assert.False(t, ValidTheme("sparkle"))
	assert.False(t, ValidTheme(""))
}
