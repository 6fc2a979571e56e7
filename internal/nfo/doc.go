// Package nfo reads Kodi-style .nfo sidecar documents that sit beside course
// directories and lesson videos.
//
// Course documents map title, plot, director and year onto the course name,
// description, instructor and year. Lesson documents map title, plot and
// runtime (minutes) onto the lesson title, description and duration (seconds).
//
// Missing and malformed documents are never fatal: Reader returns nil and the
// caller moves on to the next metadata source.
package nfo
