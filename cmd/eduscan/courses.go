package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vmunix/eduscan/internal/catalog"
	"github.com/vmunix/eduscan/internal/library"
	"github.com/vmunix/eduscan/internal/report"
	"github.com/vmunix/eduscan/pkg/lessontitle"
)

func newCoursesCommand(ctx *commandContext) *cobra.Command {
	var (
		contains string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List stored courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			filter := library.CourseFilter{Limit: limit}
			if contains != "" {
				filter.NameContains = &contains
			}
			courses, total, err := store.ListCourses(filter)
			if err != nil {
				return err
			}

			lessons, _, err := store.ListLessons(library.LessonFilter{})
			if err != nil {
				return err
			}
			counts := make(map[int64]int)
			for _, l := range lessons {
				counts[l.CourseID]++
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				items := make([]map[string]any, 0, len(courses))
				for _, c := range courses {
					items = append(items, map[string]any{
						"id":          c.ID,
						"name":        c.Name,
						"directory":   c.DirectoryPath,
						"description": c.Description,
						"instructor":  c.Instructor,
						"year":        c.Year,
						"sources":     c.MetadataSource.Tokens(),
						"lessons":     counts[c.ID],
					})
				}
				return report.WriteJSON(out, map[string]any{"courses": items, "total": total})
			}

			if len(courses) == 0 {
				fmt.Fprintln(out, "No courses in database. Run 'eduscan scan' first.")
				return nil
			}
			fmt.Fprintln(out, report.CourseTable(tableStyle(out), courses, counts))
			if total > len(courses) {
				fmt.Fprintf(out, "Showing %d of %d courses\n", len(courses), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contains, "name", "", "Only courses whose name contains this text")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum courses to list (0 = all)")

	return cmd
}

func newLessonsCommand(ctx *commandContext) *cobra.Command {
	var untitled bool

	cmd := &cobra.Command{
		Use:   "lessons <course-id>",
		Short: "List stored lessons of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}

			db, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			course, err := store.GetCourse(id)
			if errors.Is(err, library.ErrNotFound) {
				return fmt.Errorf("course %d not found", id)
			}
			if err != nil {
				return err
			}

			lessons, _, err := store.ListLessons(library.LessonFilter{CourseID: &id, WithoutTitle: untitled})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				c, err := loadCourse(store, course, lessons)
				if err != nil {
					return err
				}
				return report.WriteJSON(out, report.FromCatalog([]*catalog.Course{c})[0])
			}

			fmt.Fprintf(out, "%s (%d lessons)\n", course.Name, len(lessons))
			if len(lessons) == 0 {
				return nil
			}
			fmt.Fprintln(out, report.LessonTable(tableStyle(out), lessons))
			return nil
		},
	}

	cmd.Flags().BoolVar(&untitled, "untitled", false, "Only lessons without a title")

	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "show [course-name]",
		Short: "Show one course with all lessons",
		Long: `Show one stored course with its lessons, finding it by fuzzy name match.
With --dir, the directory is scanned as a single course and nothing is stored.

Examples:
  eduscan show "algebra"
  eduscan show --dir "/Volumes/learning/Algebra I"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				course, err := ctx.newScanner(ctx.logger(), 0).ScanCourse(cmd.Context(), dir)
				if err != nil {
					return err
				}
				if course == nil {
					return fmt.Errorf("no videos found in %s", dir)
				}
				return writeCourse(ctx, cmd, course)
			}

			if len(args) == 0 {
				return errors.New("course name or --dir required")
			}

			db, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			courses, _, err := store.ListCourses(library.CourseFilter{})
			if err != nil {
				return err
			}
			names := make([]string, len(courses))
			for i, c := range courses {
				names[i] = c.Name
			}

			match := lessontitle.Match(args[0], names)
			if match.Confidence == lessontitle.ConfidenceNone {
				return fmt.Errorf("no course matches %q", args[0])
			}
			ctx.logger().Debug("course matched",
				"query", args[0], "course", match.Title,
				"score", match.Score, "confidence", match.Confidence.String())

			found := courses[match.Index]
			lessons, _, err := store.ListLessons(library.LessonFilter{CourseID: &found.ID})
			if err != nil {
				return err
			}
			course, err := loadCourse(store, found, lessons)
			if err != nil {
				return err
			}
			return writeCourse(ctx, cmd, course)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Scan this directory as one course instead of reading the database")

	return cmd
}

func writeCourse(ctx *commandContext, cmd *cobra.Command, c *catalog.Course) error {
	if ctx.jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), report.FromCatalog([]*catalog.Course{c})[0])
	}
	return report.WriteCourse(cmd.OutOrStdout(), c)
}

// loadCourse rebuilds the in-memory course, with field provenance, from stored rows.
func loadCourse(store *library.Store, row *library.Course, lessons []*library.Lesson) (*catalog.Course, error) {
	c := row.Catalog()
	prov, err := store.CourseSources(row.ID)
	if err != nil {
		return nil, err
	}
	c.Provenance = prov

	c.Lessons = make([]*catalog.Lesson, 0, len(lessons))
	for _, l := range lessons {
		lesson := l.Catalog()
		if lesson.Provenance, err = store.LessonSources(l.ID); err != nil {
			return nil, err
		}
		c.Lessons = append(c.Lessons, lesson)
	}
	return c, nil
}
