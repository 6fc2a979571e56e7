package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCourseNFO = `<?xml version="1.0" encoding="UTF-8"?>
<tvshow>
  <title>Algebra I</title>
  <director>Ada Lovelace</director>
  <year>2021</year>
</tvshow>`

type testEnv struct {
	root   string
	db     string
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		root:   filepath.Join(dir, "library"),
		db:     filepath.Join(dir, "library.db"),
		config: filepath.Join(dir, "eduscan.toml"),
	}

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(filepath.Join(env.root, "algebra", "Algebra I.nfo"), testCourseNFO)
	write(filepath.Join(env.root, "algebra", "01 - Linear Equations.mp4"), "")
	write(filepath.Join(env.root, "algebra", "02 - Factoring.mp4"), "")
	write(filepath.Join(env.root, "python-basics", "Lesson 1 - Variables.mkv"), "")
	write(filepath.Join(env.root, "empty", "notes.txt"), "")

	write(env.config, fmt.Sprintf(`
[library]
root = %q

[database]
path = %q

[log]
level = "error"

[mediainfo]
enabled = false
`, env.root, env.db))
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestScanCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "Scanning: "+env.root)
	assert.Contains(t, out, "Found 2 courses")
	assert.Contains(t, out, "COURSE: Algebra I")
	assert.Contains(t, out, "Instructor: Ada Lovelace")
	assert.Contains(t, out, "Linear Equations")
	assert.Contains(t, out, "COURSE: python-basics")
	assert.Contains(t, out, "Variables")
	assert.NotContains(t, out, "COURSE: empty")
	assert.Contains(t, out, "Database Statistics:")

	_, err = os.Stat(env.db)
	require.NoError(t, err)
}

func TestScanCommand_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "scan", "--json")
	require.NoError(t, err)

	var doc struct {
		ID      string `json:"id"`
		Courses []struct {
			Name    string `json:"name"`
			Lessons []struct {
				Title *string `json:"title"`
			} `json:"lessons"`
		} `json:"courses"`
		Statistics *struct {
			Courses int `json:"total_courses"`
			Lessons int `json:"total_lessons"`
		} `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.ID)
	require.Len(t, doc.Courses, 2)
	assert.Equal(t, "Algebra I", doc.Courses[0].Name)
	require.NotNil(t, doc.Statistics)
	assert.Equal(t, 2, doc.Statistics.Courses)
	assert.Equal(t, 3, doc.Statistics.Lessons)
}

func TestScanCommand_NoStore(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "scan", "--no-store")
	require.NoError(t, err)
	assert.Contains(t, out, "COURSE: Algebra I")
	assert.NotContains(t, out, "Database Statistics:")
	assert.Contains(t, out, "Scan Statistics:")
	assert.Contains(t, out, "Lessons in database")

	_, err = os.Stat(env.db)
	assert.True(t, os.IsNotExist(err))
}

func TestScanCommand_RescanIsStable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "scan")
	require.NoError(t, err)
	_, err = env.run(t, "scan")
	require.NoError(t, err)

	out, err := env.run(t, "stats", "--json")
	require.NoError(t, err)
	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats["total_courses"])
	assert.Equal(t, 3, stats["total_lessons"])
	assert.Equal(t, 3, stats["lessons_with_title"])
}

func TestCoursesAndLessonsCommands(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "scan")
	require.NoError(t, err)

	out, err := env.run(t, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "Algebra I")
	assert.Contains(t, out, "python-basics")

	out, err = env.run(t, "courses", "--json")
	require.NoError(t, err)
	var list struct {
		Courses []struct {
			ID      int64  `json:"id"`
			Name    string `json:"name"`
			Lessons int    `json:"lessons"`
		} `json:"courses"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Courses, 2)
	assert.Equal(t, "Algebra I", list.Courses[0].Name)
	assert.Equal(t, 2, list.Courses[0].Lessons)

	out, err = env.run(t, "lessons", fmt.Sprint(list.Courses[0].ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Algebra I (2 lessons)")
	assert.Contains(t, out, "Factoring")

	_, err = env.run(t, "lessons", "9999")
	assert.ErrorContains(t, err, "course 9999 not found")
}

func TestShowCommand(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "scan")
	require.NoError(t, err)

	out, err := env.run(t, "show", "algebra")
	require.NoError(t, err)
	assert.Contains(t, out, "COURSE: Algebra I")
	assert.Contains(t, out, "Linear Equations")

	_, err = env.run(t, "show", "zzzzqqqq")
	assert.Error(t, err)
}

func TestShowCommand_Dir(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "show", "--dir", filepath.Join(env.root, "python-basics"))
	require.NoError(t, err)
	assert.Contains(t, out, "COURSE: python-basics")
	assert.Contains(t, out, "Variables")

	_, err = env.run(t, "show", "--dir", filepath.Join(env.root, "empty"))
	assert.ErrorContains(t, err, "no videos found")
}

func TestClearCommand(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "scan")
	require.NoError(t, err)

	out, err := env.run(t, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = env.run(t, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleared.")

	out, err = env.run(t, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "No courses in database")

	out, err = env.run(t, "scans")
	require.NoError(t, err)
	assert.Contains(t, out, env.root)
}

func TestParseCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", "01 - Introduction to Python.mp4", "Lesson 3 - Loops.mkv"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Introduction to Python")
	assert.Contains(t, out.String(), "Loops")
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "eduscan.toml")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", path})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", path})
	assert.ErrorContains(t, cmd.Execute(), "already exists")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("WARN").String())
	assert.Equal(t, "ERROR", parseLogLevel("error").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}

func TestParseCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("05 - Recursion.mp4\n\n   \n07.mkv\n"), 0644))

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse", "--json", "-f", path})
	require.NoError(t, cmd.Execute())

	var items []struct {
		Filename string  `json:"filename"`
		Title    *string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Recursion", *items[0].Title)
	assert.Nil(t, items[1].Title)

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"parse"})
	assert.Error(t, cmd.Execute())
}
