package resolve

import (
	"github.com/vmunix/eduscan/internal/catalog"
	"github.com/vmunix/eduscan/internal/mediainfo"
	"github.com/vmunix/eduscan/internal/nfo"
	"github.com/vmunix/eduscan/pkg/lessontitle"
)

// LessonInputs are the metadata sources available for one lesson.
type LessonInputs struct {
	Sidecar *nfo.LessonMeta
	// Container is called at most once, and only when the sidecar left a
	// field it can supply unresolved. May be nil.
	Container func() *mediainfo.Info
}

// Lesson resolves title, duration and description of l.
// Fields already set are left alone.
func Lesson(l *catalog.Lesson, in LessonInputs) []Resolution {
	if l.Provenance == nil {
		l.Provenance = catalog.Provenance{}
	}
	sidecar := in.Sidecar
	if sidecar == nil {
		sidecar = &nfo.LessonMeta{}
	}
	container := memo(in.Container)

	var out []Resolution

	if l.Title == nil {
		title, res := Chain[string]{
			{Kind: catalog.SourceSidecar, Attempt: ptr(sidecar.Title)},
			{Kind: catalog.SourceContainerTags, Attempt: func() (string, bool) {
				if info := container(); info != nil && info.Title != nil {
					return *info.Title, true
				}
				return "", false
			}},
			{Kind: catalog.SourceFilename, Attempt: func() (string, bool) {
				return lessontitle.Parse(l.Filename)
			}},
		}.Resolve(catalog.FieldTitle)
		if res.Resolved() {
			l.Title = &title
			record(&l.Source, l.Provenance, res)
		}
		out = append(out, res)
	}

	if l.Duration == nil {
		duration, res := Chain[int]{
			{Kind: catalog.SourceSidecar, Attempt: ptr(sidecar.DurationSeconds)},
			{Kind: catalog.SourceContainerTags, Attempt: func() (int, bool) {
				if info := container(); info != nil && info.DurationSeconds != nil {
					return *info.DurationSeconds, true
				}
				return 0, false
			}},
		}.Resolve(catalog.FieldDuration)
		if res.Resolved() {
			l.Duration = &duration
			record(&l.Source, l.Provenance, res)
		}
		out = append(out, res)
	}

	if l.Description == nil {
		out = append(out, sidecarOnly(&l.Description, sidecar.Description, catalog.FieldDescription, &l.Source, l.Provenance))
	}

	return out
}

// Course resolves name, description, instructor and year of c from its
// sidecar document. meta may be nil. A sidecar name replaces the
// directory placeholder and clears the directory flag.
func Course(c *catalog.Course, meta *nfo.CourseMeta) []Resolution {
	if c.Provenance == nil {
		c.Provenance = catalog.Provenance{}
	}
	if meta == nil {
		meta = &nfo.CourseMeta{}
	}

	var out []Resolution

	if c.Provenance[catalog.FieldName] != catalog.SourceSidecar {
		placeholder := c.Name
		name, res := Chain[string]{
			{Kind: catalog.SourceSidecar, Attempt: ptr(meta.Name)},
			{Kind: catalog.SourceDirectoryName, Attempt: func() (string, bool) {
				return placeholder, placeholder != ""
			}},
		}.Resolve(catalog.FieldName)
		c.Name = name
		if res.Source() == catalog.SourceSidecar {
			c.Source.DirectoryName = false
		}
		record(&c.Source, c.Provenance, res)
		out = append(out, res)
	}

	if c.Description == nil {
		out = append(out, sidecarOnly(&c.Description, meta.Description, catalog.FieldDescription, &c.Source, c.Provenance))
	}
	if c.Instructor == nil {
		out = append(out, sidecarOnly(&c.Instructor, meta.Instructor, catalog.FieldInstructor, &c.Source, c.Provenance))
	}
	if c.Year == nil {
		out = append(out, sidecarOnly(&c.Year, meta.Year, catalog.FieldYear, &c.Source, c.Provenance))
	}

	return out
}

func sidecarOnly(dst **string, value *string, field catalog.Field, src *catalog.Source, prov catalog.Provenance) Resolution {
	v, res := Chain[string]{{Kind: catalog.SourceSidecar, Attempt: ptr(value)}}.Resolve(field)
	if res.Resolved() {
		*dst = &v
		record(src, prov, res)
	}
	return res
}

func record(src *catalog.Source, prov catalog.Provenance, res Resolution) {
	if !res.Resolved() {
		return
	}
	src.Set(res.Source())
	prov[res.Field] = res.Source()
}

func memo(f func() *mediainfo.Info) func() *mediainfo.Info {
	var (
		done bool
		info *mediainfo.Info
	)
	return func() *mediainfo.Info {
		if f == nil {
			return nil
		}
		if !done {
			info = f()
			done = true
		}
		return info
	}
}
