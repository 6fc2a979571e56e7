package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vmunix/eduscan/internal/catalog"
	"github.com/vmunix/eduscan/internal/library"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Style selects table decoration. Plain is used when output is not a terminal.
type Style int

const (
	StylePlain Style = iota
	StyleRounded
)

func renderTable(style Style, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if style == StyleRounded {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
		tw.Style().Options = table.OptionsNoBordersAndSeparators
		tw.Style().Box.PaddingLeft = ""
		tw.Style().Box.PaddingRight = "  "
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func writeTable(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

// WriteStatistics renders store-level statistics.
func WriteStatistics(w io.Writer, style Style, stats catalog.Statistics) error {
	rows := [][]string{
		{"Courses in database", strconv.Itoa(stats.Courses)},
		{"Lessons in database", strconv.Itoa(stats.Lessons)},
		{"Lessons with titles", fmt.Sprintf("%d (%d%%)", stats.LessonsWithTitle, percent(stats.LessonsWithTitle, stats.Lessons))},
		{"Courses with durations", fmt.Sprintf("%d (%d%%)", stats.CoursesWithDuration, percent(stats.CoursesWithDuration, stats.Courses))},
	}
	return writeTable(w, renderTable(style, []string{"Statistic", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}

// CourseTable renders stored courses with their lesson counts.
// counts maps course ID to number of lessons; missing entries render as 0.
func CourseTable(style Style, courses []*library.Course, counts map[int64]int) string {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			deref(c.Instructor),
			deref(c.Year),
			strconv.Itoa(counts[c.ID]),
			c.MetadataSource.String(),
		})
	}
	return renderTable(style,
		[]string{"ID", "Name", "Instructor", "Year", "Lessons", "Source"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

// LessonTable renders stored lessons of one course.
func LessonTable(style Style, lessons []*library.Lesson) string {
	rows := make([][]string, 0, len(lessons))
	for i, l := range lessons {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orPlaceholder(l.Title, "[NO TITLE]"),
			l.Catalog().DurationString(),
			l.FileName,
			l.MetadataSource.String(),
		})
	}
	return renderTable(style,
		[]string{"#", "Title", "Duration", "File", "Source"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
	)
}

// ScanTable renders the scan history.
func ScanTable(style Style, scans []*library.Scan) string {
	rows := make([][]string, 0, len(scans))
	for _, s := range scans {
		status := "complete"
		if s.Canceled {
			status = "canceled"
		}
		rows = append(rows, []string{
			s.ID,
			s.StartedAt.Local().Format(time.DateTime),
			s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond).String(),
			s.Root,
			strconv.Itoa(s.Courses),
			strconv.Itoa(s.Lessons),
			status,
		})
	}
	return renderTable(style,
		[]string{"ID", "Started", "Elapsed", "Root", "Courses", "Lessons", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignLeft},
	)
}

// ParseTable renders filename parser results: one row per filename.
func ParseTable(style Style, filenames []string, parse func(string) (string, bool)) string {
	rows := make([][]string, 0, len(filenames))
	for _, name := range filenames {
		title, ok := parse(name)
		if !ok {
			title = "[NO TITLE]"
		}
		rows = append(rows, []string{name, title})
	}
	return renderTable(style, []string{"Filename", "Title"}, rows, nil)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orPlaceholder(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	return *s
}
