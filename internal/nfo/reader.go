package nfo

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtension is the sidecar document extension.
const DefaultExtension = ".nfo"

// Locator picks which sidecar document belongs to a course or lesson.
type Locator struct {
	// Extension of sidecar documents, matched case-insensitively.
	Extension string
	// Strict disables the directory fallback for lessons without an exact-stem document.
	Strict bool
}

func (l Locator) ext() string {
	if l.Extension == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(l.Extension, ".") {
		return "." + l.Extension
	}
	return l.Extension
}

// documents lists sidecar documents directly inside dir in lexical order.
func (l Locator) documents(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), l.ext()) {
			docs = append(docs, filepath.Join(dir, e.Name()))
		}
	}
	return docs
}

// CourseDoc returns the first sidecar document directly in dir.
func (l Locator) CourseDoc(dir string) (string, bool) {
	docs := l.documents(dir)
	if len(docs) == 0 {
		return "", false
	}
	return docs[0], true
}

// exactDoc returns the document whose stem matches the video's stem.
func (l Locator) exactDoc(video string, docs []string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	for _, doc := range docs {
		name := filepath.Base(doc)
		if strings.TrimSuffix(name, filepath.Ext(name)) == stem {
			return doc, true
		}
	}
	return "", false
}

// Claimed returns the documents that already belong to someone: the course
// document of courseDir and every video's exact-stem document. Lessons never
// fall back to a claimed document.
func (l Locator) Claimed(courseDir string, videos []string) map[string]bool {
	claimed := make(map[string]bool)
	if doc, ok := l.CourseDoc(courseDir); ok {
		claimed[doc] = true
	}
	byDir := make(map[string][]string)
	for _, v := range videos {
		dir := filepath.Dir(v)
		if _, ok := byDir[dir]; !ok {
			byDir[dir] = l.documents(dir)
		}
		if doc, ok := l.exactDoc(v, byDir[dir]); ok {
			claimed[doc] = true
		}
	}
	return claimed
}

// LessonDoc returns the document for a video: the one named after the video's
// stem if present, otherwise the first unclaimed document in the video's
// directory. The second result counts the fallback candidates considered.
func (l Locator) LessonDoc(video string, claimed map[string]bool) (string, int, bool) {
	docs := l.documents(filepath.Dir(video))
	if doc, ok := l.exactDoc(video, docs); ok {
		return doc, 0, true
	}
	if l.Strict {
		return "", 0, false
	}

	var candidates []string
	for _, doc := range docs {
		if !claimed[doc] {
			candidates = append(candidates, doc)
		}
	}
	if len(candidates) == 0 {
		return "", 0, false
	}
	return candidates[0], len(candidates), true
}

// Reader locates and parses sidecar documents, absorbing failures.
type Reader struct {
	locator Locator
	log     *slog.Logger
}

// NewReader creates a sidecar reader.
func NewReader(locator Locator, log *slog.Logger) *Reader {
	if log == nil {
		log = slog.Default()
	}
	return &Reader{locator: locator, log: log}
}

// Locator returns the document locator used by the reader.
func (r *Reader) Locator() Locator { return r.locator }

// Course reads the course document of dir. Returns nil when there is none or it is malformed.
func (r *Reader) Course(dir string) *CourseMeta {
	path, ok := r.locator.CourseDoc(dir)
	if !ok {
		return nil
	}
	meta, err := ParseCourse(path)
	if err != nil {
		r.warn(path, err)
		return nil
	}
	r.log.Debug("course sidecar", "path", path)
	return meta
}

// Lesson reads the document of a video. Returns nil when there is none or it is malformed.
func (r *Reader) Lesson(video string, claimed map[string]bool) *LessonMeta {
	path, candidates, ok := r.locator.LessonDoc(video, claimed)
	if !ok {
		return nil
	}
	if candidates > 1 {
		r.log.Debug("ambiguous lesson sidecar, using first match",
			"video", video, "path", path, "candidates", candidates)
	}
	meta, err := ParseLesson(path)
	if err != nil {
		r.warn(path, err)
		return nil
	}
	return meta
}

func (r *Reader) warn(path string, err error) {
	if errors.Is(err, ErrMalformed) {
		r.log.Warn("failed to parse sidecar", "path", path, "error", err)
		return
	}
	r.log.Warn("failed to read sidecar", "path", path, "error", err)
}
