package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/eduscan/internal/report"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			stats, err := store.Statistics()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				return report.WriteJSON(out, stats)
			}
			return report.WriteStatistics(out, tableStyle(out), stats)
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored courses and lessons",
		Long: `Delete all stored courses, lessons and field provenance.
Scan history is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "Delete all stored courses and lessons? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			db, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := store.Clear(); err != nil {
				return err
			}
			ctx.logger().Info("database cleared", "path", ctx.config.Database.Path)
			fmt.Fprintln(cmd.OutOrStdout(), "Database cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newScansCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scans",
		Short: "Show recent scan runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			scans, err := store.ListScans(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				items := make([]map[string]any, 0, len(scans))
				for _, s := range scans {
					items = append(items, map[string]any{
						"id":          s.ID,
						"root":        s.Root,
						"started_at":  s.StartedAt,
						"finished_at": s.FinishedAt,
						"courses":     s.Courses,
						"lessons":     s.Lessons,
						"canceled":    s.Canceled,
					})
				}
				return report.WriteJSON(out, items)
			}
			if len(scans) == 0 {
				fmt.Fprintln(out, "No scans recorded.")
				return nil
			}
			fmt.Fprintln(out, report.ScanTable(tableStyle(out), scans))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of scans to show")

	return cmd
}
