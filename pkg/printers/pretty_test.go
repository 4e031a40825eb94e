package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
)

func init() {
	color.NoColor = true
}

func TestMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	g := calendar.BuildGrid(time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC), nil, time.Time{}, time.Monday)
	pp.Month(g)

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 8)
	assert.Equal(t, "June 2014", strings.TrimSpace(lines[0]))
	assert.Equal(t, "Mo Tu We Th Fr Sa Su", lines[1])
	assert.Equal(t, strings.Repeat(" ", 19)+"1", lines[2])
	assert.Equal(t, " 2  3  4  5  6  7  8", lines[3])
	assert.Equal(t, "30", lines[7])
}

func TestEntry(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	r := entry.New(time.Date(2014, 6, 3, 0, 0, 0, 0, time.Local), entry.TimeOfDay{Hour: 7, Minute: 30}, "stiff knee")
	pp.Entry(r, map[entry.Kind]string{
		entry.KindSymptom:  "Leg cramp",
		entry.KindActivity: "Not recorded",
	})

	out := buf.String()
	assert.Contains(t, out, "2014-06-03")
	assert.Contains(t, out, "07:30:00")
	assert.Contains(t, out, "Leg cramp")
	assert.Contains(t, out, "Not recorded")
	assert.Contains(t, out, "stiff knee")
}

func TestEntryWrapsNotes(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	notes := strings.TrimSpace(strings.Repeat("headache after lunch ", 10))
	pp.Entry(entry.New(time.Date(2014, 6, 3, 0, 0, 0, 0, time.Local), entry.TimeOfDay{Hour: 7}, notes), nil)

	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len(line), notesWidth, line)
	}
	assert.Contains(t, buf.String(), "headache after lunch")
}

func TestItems(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}

	pp.Items()
	assert.Contains(t, buf.String(), "none")

	buf.Reset()
	pp.Items(
		&entry.Item{ID: "a", Kind: entry.KindSymptom, Name: "Headache", Active: true},
		&entry.Item{ID: "b", Kind: entry.KindSymptom, Name: "Leg cramp", Active: false},
	)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "Headache")
	assert.Contains(t, lines[1], "yes")
	assert.Contains(t, lines[2], "Leg cramp")
	assert.Contains(t, lines[2], "no")
}
