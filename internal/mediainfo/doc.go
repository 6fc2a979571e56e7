// Package mediainfo queries embedded container metadata (duration, title) of
// video files through an external capability.
//
// Key types:
//   - Prober: the capability contract, one call per video file
//   - Inspector: Prober backed by the mediainfo CLI (General track)
//   - FFprobe: Prober backed by ffprobe's format section
//   - Reader: wraps a Prober and turns every failure into absence
//
// The capability is optional. When the binary is not installed, Reader
// reports nothing and scanning continues with the other sources.
package mediainfo
