package nfo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// CourseMeta holds course-level fields read from a sidecar document.
// Nil fields were absent or empty in the document.
type CourseMeta struct {
	Name        *string
	Description *string
	Instructor  *string
	Year        *string
}

// LessonMeta holds lesson-level fields read from a sidecar document.
type LessonMeta struct {
	Title           *string
	Description     *string
	DurationSeconds *int
}

type document struct {
	XMLName  xml.Name
	Elements []element `xml:",any"`
}

type element struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// ParseCourse reads a course document (tvshow.nfo and friends).
func ParseCourse(path string) (*CourseMeta, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	meta := &CourseMeta{}
	for _, el := range doc.Elements {
		switch el.XMLName.Local {
		case "title":
			meta.Name = text(el)
		case "plot":
			meta.Description = text(el)
		case "director":
			meta.Instructor = text(el)
		case "year":
			meta.Year = text(el)
		}
	}
	return meta, nil
}

// ParseLesson reads a lesson document (episode .nfo).
// Runtime is stored in minutes and converted to seconds.
func ParseLesson(path string) (*LessonMeta, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	meta := &LessonMeta{}
	for _, el := range doc.Elements {
		switch el.XMLName.Local {
		case "title":
			meta.Title = text(el)
		case "plot":
			meta.Description = text(el)
		case "runtime":
			meta.DurationSeconds = runtimeSeconds(el.Text)
		}
	}
	return meta, nil
}

func readDocument(path string) (*document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(bytes.NewReader(b))
	dec.CharsetReader = charsetReader

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &doc, nil
}

// charsetReader handles documents declaring a non-UTF-8 encoding, e.g. ISO-8859-1.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

func text(el element) *string {
	s := strings.TrimSpace(el.Text)
	if s == "" {
		return nil
	}
	return &s
}

// runtimeSeconds converts a runtime in minutes to seconds.
// Non-numeric and non-positive values are absent.
func runtimeSeconds(raw string) *int {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || minutes <= 0 {
		return nil
	}
	secs := minutes * 60
	return &secs
}
