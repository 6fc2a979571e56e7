// Package catalog holds the in-memory course and lesson model produced by a scan.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind identifies a single origin of metadata.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceSidecar
	SourceContainerTags
	SourceFilename
	SourceDirectoryName
)

func (k SourceKind) String() string {
	switch k {
	case SourceSidecar:
		return "nfo"
	case SourceContainerTags:
		return "file-tags"
	case SourceFilename:
		return "filename"
	case SourceDirectoryName:
		return "dir-name"
	default:
		return "unknown"
	}
}

// ParseSourceKind is the inverse of SourceKind.String.
func ParseSourceKind(s string) SourceKind {
	switch s {
	case "nfo":
		return SourceSidecar
	case "file-tags":
		return SourceContainerTags
	case "filename":
		return SourceFilename
	case "dir-name":
		return SourceDirectoryName
	default:
		return SourceNone
	}
}

// Source summarizes which origins contributed to an entity.
// Several flags may be set when different fields came from different sources.
type Source struct {
	Sidecar       bool
	ContainerTags bool
	Filename      bool
	DirectoryName bool
}

// Set raises the flag for kind. SourceNone is ignored.
func (s *Source) Set(kind SourceKind) {
	switch kind {
	case SourceSidecar:
		s.Sidecar = true
	case SourceContainerTags:
		s.ContainerTags = true
	case SourceFilename:
		s.Filename = true
	case SourceDirectoryName:
		s.DirectoryName = true
	}
}

// Has reports whether the flag for kind is set.
func (s Source) Has(kind SourceKind) bool {
	switch kind {
	case SourceSidecar:
		return s.Sidecar
	case SourceContainerTags:
		return s.ContainerTags
	case SourceFilename:
		return s.Filename
	case SourceDirectoryName:
		return s.DirectoryName
	default:
		return false
	}
}

// Kinds returns the set flags in display order: sidecar, container, filename, directory.
func (s Source) Kinds() []SourceKind {
	var kinds []SourceKind
	for _, k := range []SourceKind{SourceSidecar, SourceContainerTags, SourceFilename, SourceDirectoryName} {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Tokens returns the storage tokens of the set flags in display order.
func (s Source) Tokens() []string {
	kinds := s.Kinds()
	tokens := make([]string, 0, len(kinds))
	for _, k := range kinds {
		tokens = append(tokens, k.String())
	}
	return tokens
}

// String is the persisted form, e.g. "nfo, filename". "unknown" when no flag is set.
func (s Source) String() string {
	tokens := s.Tokens()
	if len(tokens) == 0 {
		return "unknown"
	}
	return strings.Join(tokens, ", ")
}

// ParseSource rebuilds a Source from its persisted form.
func ParseSource(s string) Source {
	var src Source
	for _, tok := range strings.Split(s, ",") {
		src.Set(ParseSourceKind(strings.TrimSpace(tok)))
	}
	return src
}

// Field names a resolved attribute of a course or lesson.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDuration    Field = "duration"
	FieldDescription Field = "description"
	FieldName        Field = "name"
	FieldInstructor  Field = "instructor"
	FieldYear        Field = "year"
)

// Provenance maps each resolved field to the source that supplied it.
type Provenance map[Field]SourceKind

// Lesson is a single video file and its resolved metadata.
type Lesson struct {
	Path        string
	Filename    string
	Title       *string
	Duration    *int // seconds
	Description *string
	Source      Source
	Provenance  Provenance
}

// NewLesson creates an unresolved lesson for the video at path.
func NewLesson(path string) *Lesson {
	return &Lesson{
		Path:       path,
		Filename:   filepath.Base(path),
		Provenance: Provenance{},
	}
}

// Complete reports whether the lesson has its essential metadata.
func (l *Lesson) Complete() bool {
	return l.Title != nil
}

// DurationString formats the duration as H:MM:SS, or M:SS under an hour.
func (l *Lesson) DurationString() string {
	if l.Duration == nil {
		return "Unknown"
	}
	d := *l.Duration
	hours := d / 3600
	minutes := (d % 3600) / 60
	seconds := d % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PlaceholderSuffix marks course names derived from the directory.
const PlaceholderSuffix = "-fromdir"

// Course is a directory of lessons with shared descriptive metadata.
type Course struct {
	Dir         string
	Name        string
	Description *string
	Instructor  *string
	Year        *string
	Lessons     []*Lesson
	Source      Source
	Provenance  Provenance
}

// NewCourse seeds a course with the directory-derived placeholder name.
func NewCourse(dir string) *Course {
	c := &Course{
		Dir:        dir,
		Name:       filepath.Base(dir) + PlaceholderSuffix,
		Provenance: Provenance{FieldName: SourceDirectoryName},
	}
	c.Source.DirectoryName = true
	return c
}

// Complete reports whether the course has a name. Always true for assembled courses.
func (c *Course) Complete() bool {
	return c.Name != ""
}

// LessonsComplete counts lessons with complete metadata.
func (c *Course) LessonsComplete() int {
	n := 0
	for _, l := range c.Lessons {
		if l.Complete() {
			n++
		}
	}
	return n
}

// HasDuration reports whether any lesson has a known duration.
func (c *Course) HasDuration() bool {
	for _, l := range c.Lessons {
		if l.Duration != nil {
			return true
		}
	}
	return false
}

// Statistics aggregates library-wide counts.
type Statistics struct {
	Courses             int `json:"total_courses"`
	Lessons             int `json:"total_lessons"`
	LessonsWithTitle    int `json:"lessons_with_title"`
	CoursesWithDuration int `json:"courses_with_duration"`
}

// Summarize computes Statistics over an in-memory scan result.
func Summarize(courses []*Course) Statistics {
	var s Statistics
	s.Courses = len(courses)
	for _, c := range courses {
		s.Lessons += len(c.Lessons)
		s.LessonsWithTitle += c.LessonsComplete()
		if c.HasDuration() {
			s.CoursesWithDuration++
		}
	}
	return s
}
