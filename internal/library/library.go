// Package library persists scanned courses, lessons and their provenance.
package library

import (
	"time"

	"github.com/vmunix/eduscan/internal/catalog"
)

// Course is a stored course row.
type Course struct {
	ID             int64
	Name           string
	DirectoryPath  string
	Description    *string
	Instructor     *string
	Year           *string
	MetadataSource catalog.Source
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Lesson is a stored lesson row.
type Lesson struct {
	ID              int64
	CourseID        int64
	Title           *string
	FilePath        string
	FileName        string
	DurationSeconds *int
	Description     *string
	MetadataSource  catalog.Source
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Scan is one recorded scan run.
type Scan struct {
	ID         string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time
	Courses    int
	Lessons    int
	Canceled   bool
}

// CourseFromCatalog converts a resolved course to its row form.
func CourseFromCatalog(c *catalog.Course) *Course {
	return &Course{
		Name:           c.Name,
		DirectoryPath:  c.Dir,
		Description:    c.Description,
		Instructor:     c.Instructor,
		Year:           c.Year,
		MetadataSource: c.Source,
	}
}

// LessonFromCatalog converts a resolved lesson to its row form.
func LessonFromCatalog(courseID int64, l *catalog.Lesson) *Lesson {
	return &Lesson{
		CourseID:        courseID,
		Title:           l.Title,
		FilePath:        l.Path,
		FileName:        l.Filename,
		DurationSeconds: l.Duration,
		Description:     l.Description,
		MetadataSource:  l.Source,
	}
}

// Catalog converts a stored course back to the in-memory model, without lessons.
func (c *Course) Catalog() *catalog.Course {
	return &catalog.Course{
		Dir:         c.DirectoryPath,
		Name:        c.Name,
		Description: c.Description,
		Instructor:  c.Instructor,
		Year:        c.Year,
		Source:      c.MetadataSource,
		Provenance:  catalog.Provenance{},
	}
}

// Catalog converts a stored lesson back to the in-memory model.
func (l *Lesson) Catalog() *catalog.Lesson {
	return &catalog.Lesson{
		Path:        l.FilePath,
		Filename:    l.FileName,
		Title:       l.Title,
		Duration:    l.DurationSeconds,
		Description: l.Description,
		Source:      l.MetadataSource,
		Provenance:  catalog.Provenance{},
	}
}
