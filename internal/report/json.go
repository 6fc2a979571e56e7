package report

import (
	"encoding/json"
	"io"

	"github.com/vmunix/eduscan/internal/catalog"
)

// LessonJSON is the JSON form of a resolved lesson.
type LessonJSON struct {
	Path            string            `json:"path"`
	Filename        string            `json:"filename"`
	Title           *string           `json:"title"`
	DurationSeconds *int              `json:"duration_seconds"`
	Duration        string            `json:"duration"`
	Description     *string           `json:"description,omitempty"`
	Sources         []string          `json:"sources"`
	Provenance      map[string]string `json:"provenance"`
}

// CourseJSON is the JSON form of a resolved course.
type CourseJSON struct {
	Directory   string            `json:"directory"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Instructor  *string           `json:"instructor,omitempty"`
	Year        *string           `json:"year,omitempty"`
	Sources     []string          `json:"sources"`
	Provenance  map[string]string `json:"provenance"`
	Lessons     []LessonJSON      `json:"lessons"`
}

// ScanJSON is the JSON document written by `eduscan scan --json`.
type ScanJSON struct {
	ID         string              `json:"id"`
	Root       string              `json:"root"`
	Canceled   bool                `json:"canceled"`
	ElapsedMS  int64               `json:"elapsed_ms"`
	Courses    []CourseJSON        `json:"courses"`
	Summary    Summary             `json:"summary"`
	Statistics *catalog.Statistics `json:"statistics,omitempty"`
}

// FromCatalog converts resolved courses to their JSON form.
func FromCatalog(courses []*catalog.Course) []CourseJSON {
	out := make([]CourseJSON, 0, len(courses))
	for _, c := range courses {
		cj := CourseJSON{
			Directory:   c.Dir,
			Name:        c.Name,
			Description: c.Description,
			Instructor:  c.Instructor,
			Year:        c.Year,
			Sources:     c.Source.Tokens(),
			Provenance:  provenanceJSON(c.Provenance),
			Lessons:     make([]LessonJSON, 0, len(c.Lessons)),
		}
		for _, l := range c.Lessons {
			cj.Lessons = append(cj.Lessons, LessonJSON{
				Path:            l.Path,
				Filename:        l.Filename,
				Title:           l.Title,
				DurationSeconds: l.Duration,
				Duration:        l.DurationString(),
				Description:     l.Description,
				Sources:         l.Source.Tokens(),
				Provenance:      provenanceJSON(l.Provenance),
			})
		}
		out = append(out, cj)
	}
	return out
}

func provenanceJSON(p catalog.Provenance) map[string]string {
	out := make(map[string]string, len(p))
	for field, kind := range p {
		out[string(field)] = kind.String()
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
