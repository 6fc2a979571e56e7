package scanner

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the video file extensions recognized by default.
var DefaultExtensions = []string{"mp4", "mkv", "avi", "mov", "flv", "wmv", "webm", "m4v"}

type videoSet map[string]bool

func newVideoSet(exts []string) videoSet {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(videoSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set["."+ext] = true
		}
	}
	return set
}

// IsVideo reports whether path has a video extension.
func (v videoSet) IsVideo(path string) bool {
	return v[strings.ToLower(filepath.Ext(path))]
}

// findVideos finds all video files under dir (recursive), sorted.
// A symlinked dir is walked through its target, but returned paths stay
// under dir. AppleDouble "._*" files are skipped. Unreadable subtrees are
// logged and skipped so the rest of the course is still collected.
func findVideos(dir string, videos videoSet, log *slog.Logger) []string {
	walkRoot := dir
	if target, err := filepath.EvalSymlinks(dir); err == nil {
		walkRoot = target
	}

	var found []string
	_ = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("failed to walk", "path", path, "error", err)
			if d != nil && d.IsDir() && path != walkRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "._") {
			return nil
		}
		if !videos.IsVideo(path) {
			return nil
		}
		if walkRoot != dir {
			rel, err := filepath.Rel(walkRoot, path)
			if err != nil {
				return nil
			}
			path = filepath.Join(dir, rel)
		}
		found = append(found, path)
		return nil
	})

	sort.Strings(found)
	return found
}
