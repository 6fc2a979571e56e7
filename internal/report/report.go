// Package report renders scan results for the terminal and as JSON.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmunix/eduscan/internal/catalog"
)

const ruleWidth = 80

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// displayTokens label sources in terminal output, in fixed display order.
var displayTokens = map[catalog.SourceKind]string{
	catalog.SourceSidecar:       "NFO",
	catalog.SourceContainerTags: "file-tags",
	catalog.SourceFilename:      "filename",
	catalog.SourceDirectoryName: "dir-name",
}

// Annotation renders a source summary as " [NFO, filename]", or "" when nothing contributed.
func Annotation(s catalog.Source) string {
	kinds := s.Kinds()
	if len(kinds) == 0 {
		return ""
	}
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = displayTokens[k]
	}
	return " [" + strings.Join(labels, ", ") + "]"
}

// WriteCourse writes one course block with its numbered lessons.
func WriteCourse(w io.Writer, c *catalog.Course) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", heavyRule)
	fmt.Fprintf(&b, "COURSE: %s%s\n", c.Name, Annotation(c.Source))
	fmt.Fprintf(&b, "%s\n", heavyRule)

	if c.Description != nil {
		fmt.Fprintf(&b, "Description: %s\n", *c.Description)
	}
	if c.Instructor != nil {
		fmt.Fprintf(&b, "Instructor: %s\n", *c.Instructor)
	}
	if c.Year != nil {
		fmt.Fprintf(&b, "Year: %s\n", *c.Year)
	}

	fmt.Fprintf(&b, "\nLessons (%d total, %d with metadata):\n", len(c.Lessons), c.LessonsComplete())
	fmt.Fprintf(&b, "%s\n", lightRule)

	for i, l := range c.Lessons {
		title := "[NO TITLE]"
		if l.Title != nil {
			title = *l.Title
		}
		fmt.Fprintf(&b, "%3d. %s%s\n", i+1, title, Annotation(l.Source))
		fmt.Fprintf(&b, "      File: %s\n", relPath(c.Dir, l.Path))
		fmt.Fprintf(&b, "      Duration: %s\n", l.DurationString())
		if l.Description != nil {
			fmt.Fprintf(&b, "      Description: %s\n", *l.Description)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func relPath(dir, path string) string {
	if dir == "" {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}

// Summary holds the completeness figures of a scan.
type Summary struct {
	Courses         int `json:"courses"`
	CompleteCourses int `json:"complete_courses"`
	Lessons         int `json:"lessons"`
	CompleteLessons int `json:"complete_lessons"`
}

// Summarize computes completeness figures over scanned courses.
func Summarize(courses []*catalog.Course) Summary {
	s := Summary{Courses: len(courses)}
	for _, c := range courses {
		s.Lessons += len(c.Lessons)
		s.CompleteLessons += c.LessonsComplete()
		if c.Complete() {
			s.CompleteCourses++
		}
	}
	return s
}

// percent is the integer percentage of part in whole, 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return 100 * part / whole
}

// WriteSummary writes totals and completeness percentages.
func WriteSummary(w io.Writer, courses []*catalog.Course) error {
	s := Summarize(courses)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nSUMMARY\n%s\n", heavyRule, heavyRule)
	fmt.Fprintf(&b, "Total Courses Found: %d\n", s.Courses)
	fmt.Fprintf(&b, "Total Lessons Found: %d\n", s.Lessons)
	fmt.Fprintf(&b, "Lessons with Complete Metadata: %d/%d (%d%%)\n", s.CompleteLessons, s.Lessons, percent(s.CompleteLessons, s.Lessons))
	fmt.Fprintf(&b, "Courses with Complete Metadata: %d/%d (%d%%)\n", s.CompleteCourses, s.Courses, percent(s.CompleteCourses, s.Courses))
	fmt.Fprintf(&b, "%s\n\n", heavyRule)

	_, err := io.WriteString(w, b.String())
	return err
}
