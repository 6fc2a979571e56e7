package library

// CourseFilter specifies criteria for listing courses.
type CourseFilter struct {
	Name          *string // exact match
	NameContains  *string // case-insensitive substring
	DirectoryPath *string
	Limit         int // 0 = no limit
	Offset        int
}

// LessonFilter specifies criteria for listing lessons.
type LessonFilter struct {
	CourseID     *int64
	WithoutTitle bool // only lessons no source could title
	Limit        int
	Offset       int
}
