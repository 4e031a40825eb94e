package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against db and returns what it printed.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev, prevNoColor := color.Output, color.NoColor
	color.Output, color.NoColor = &buf, true
	t.Cleanup(func() { color.Output, color.NoColor = prev, prevNoColor })

	cmd := New()
	cmd.SetArgs(append(args, "--db", db))
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.Execute()
	return buf.String(), err
}

func testDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "data", "entries.db")
}

func TestRootRejectsMoreThanOneArgument(t *testing.T) {
	out, err := run(t, testDB(t), "a.db", "b.db")
	require.Error(t, err)
	assert.Contains(t, out, "accepts at most 1 arg(s)")
}

func TestEntryCreateShowAndDuplicate(t *testing.T) {
	db := testDB(t)

	out, err := run(t, db, "entry", "create", "--on", "2014-06-03", "--time", "21:15", "--notes", "stiff knee")
	require.NoError(t, err)
	assert.Contains(t, out, "2014-06-03")
	assert.Contains(t, out, "21:15:00")
	assert.Contains(t, out, "stiff knee")
	assert.Contains(t, out, "Not recorded")

	out, err = run(t, db, "entry", "create", "--on", "2014-06-03", "--notes", "again")
	require.NoError(t, err, "duplicates are reported, not failed")
	assert.Contains(t, out, "cannot create entry for the date of 2014-06-03 because one already exists")

	out, err = run(t, db, "entry", "show", "--on", "2014-06-03")
	require.NoError(t, err)
	assert.Contains(t, out, "stiff knee")
	assert.NotContains(t, out, "again")
}

func TestEntryShowMissing(t *testing.T) {
	out, err := run(t, testDB(t), "entry", "show", "--on", "2014-06-04")
	require.NoError(t, err)
	assert.Contains(t, out, "no entry for the date of 2014-06-04")
}

func TestEntryShowMissingJSON(t *testing.T) {
	out, err := run(t, testDB(t), "entry", "show", "--on", "2014-06-04", "--json")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "no entry for the date of 2014-06-04", got["error"])
}

func TestEntryEdit(t *testing.T) {
	db := testDB(t)
	_, err := run(t, db, "entry", "create", "--on", "2014-06-03", "--time", "07:00")
	require.NoError(t, err)

	out, err := run(t, db, "entry", "edit", "--on", "2014-06-03", "--notes", "better by the evening")
	require.NoError(t, err)
	assert.Contains(t, out, "better by the evening")
	assert.Contains(t, out, "07:00:00")

	_, err = run(t, db, "entry", "edit", "--on", "2014-06-03", "--time", "lunch")
	assert.Error(t, err)
}

func TestItemsLifecycle(t *testing.T) {
	db := testDB(t)

	_, err := run(t, db, "items", "add", "Leg cramp")
	require.NoError(t, err)
	_, err = run(t, db, "items", "add", "--kind", "activity", "Walk")
	require.NoError(t, err)

	_, err = run(t, db, "items", "add", "leg_cramp")
	assert.Error(t, err, "names are validated")

	out, err := run(t, db, "items", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Symptoms")
	assert.Contains(t, out, "Leg cramp")
	assert.NotContains(t, out, "Walk")

	_, err = run(t, db, "items", "edit", "Leg cramp", "Calf cramp")
	require.NoError(t, err)
	_, err = run(t, db, "items", "toggle", "Calf cramp")
	require.NoError(t, err)

	out, err = run(t, db, "items", "list", "--json")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Calf cramp", items[0]["name"])
	assert.Equal(t, false, items[0]["active"])
}

func TestItemsSelectedByID(t *testing.T) {
	db := testDB(t)
	out, err := run(t, db, "items", "add", "--kind", "activity", "Walk", "--json")
	require.NoError(t, err)
	var added map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	id, _ := added["id"].(string)
	require.NotEmpty(t, id)

	_, err = run(t, db, "items", "edit", "--kind", "activity", "--id", id, "Long walk")
	require.NoError(t, err)
	_, err = run(t, db, "items", "toggle", "--kind", "activity", "--id", id)
	require.NoError(t, err)

	_, err = run(t, db, "items", "toggle", "--kind", "activity", "--id", "no-such-id")
	assert.Error(t, err)
	_, err = run(t, db, "items", "toggle", "--kind", "activity", "--id", id, "Long walk")
	assert.Error(t, err, "name and id together are ambiguous")

	_, err = run(t, db, "entry", "create", "--on", "2014-06-03")
	require.NoError(t, err)
	out, err = run(t, db, "entry", "link", "--on", "2014-06-03", "--kind", "activity", "--id", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Long walk")

	out, err = run(t, db, "items", "list", "--kind", "activity", "--json")
	require.NoError(t, err)
	var items []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Long walk", items[0]["name"])
	assert.Equal(t, false, items[0]["active"])
}

func TestEntryLink(t *testing.T) {
	db := testDB(t)
	_, err := run(t, db, "items", "add", "Headache")
	require.NoError(t, err)
	_, err = run(t, db, "entry", "create", "--on", "2014-06-03")
	require.NoError(t, err)

	out, err := run(t, db, "entry", "link", "--on", "2014-06-03", "Headache")
	require.NoError(t, err)
	assert.Contains(t, out, "Headache")

	out, err = run(t, db, "entry", "unlink", "--on", "2014-06-03", "Headache")
	require.NoError(t, err)
	assert.NotContains(t, out, "Headache")
}

func TestCalendarJSON(t *testing.T) {
	db := testDB(t)
	_, err := run(t, db, "entry", "create", "--on", "2014-06-14")
	require.NoError(t, err)

	out, err := run(t, db, "calendar", "--month", "2014-06", "--json")
	require.NoError(t, err)
	var got calendarJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "June 2014", got.Month)
	assert.Len(t, got.Days, 30)
	assert.Equal(t, "2014-06-30", got.Days[29].Date)
	assert.True(t, got.Days[13].HasEntry)
	assert.False(t, got.Days[12].HasEntry)
}

func TestCalendarText(t *testing.T) {
	out, err := run(t, testDB(t), "calendar", "--month", "2014-06")
	require.NoError(t, err)
	assert.Contains(t, out, "June 2014")
	assert.Contains(t, out, "30")
}
