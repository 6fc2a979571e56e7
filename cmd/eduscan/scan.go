package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/eduscan/internal/catalog"
	"github.com/vmunix/eduscan/internal/ingest"
	"github.com/vmunix/eduscan/internal/library"
	"github.com/vmunix/eduscan/internal/report"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		root    string
		clearDB bool
		workers int
		noStore bool
		prune   bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and store courses",
		Long: `Scan the library root. Each immediate subdirectory holding at least one
video is a course; every video under it is a lesson.

Examples:
  eduscan scan
  eduscan scan --root /Volumes/learning --db library.db
  eduscan scan --clear-db --workers 4
  eduscan scan --no-store --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if root == "" {
				root = cfg.Library.Root
			}
			if !cmd.Flags().Changed("prune") {
				prune = cfg.Scan.Prune
			}
			logger := ctx.logger()

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var (
				ing   *ingest.Ingester
				store *library.Store
			)
			if !noStore {
				db, st, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				store = st
				ing = ingest.New(db, ingest.Config{Prune: prune}, logger.With("component", "ingest"))

				if clearDB {
					if !ctx.jsonOutput {
						fmt.Fprintln(cmd.OutOrStdout(), "Clearing database...")
					}
					if err := ing.Clear(); err != nil {
						return err
					}
				}
			}

			out := cmd.OutOrStdout()
			if !ctx.jsonOutput {
				fmt.Fprintf(out, "\nScanning: %s\n%s\n", root, strings.Repeat("-", 80))
			}

			result, scanErr := ctx.newScanner(logger, workers).Scan(sigCtx, root)
			if scanErr != nil && !errors.Is(scanErr, context.Canceled) {
				return scanErr
			}

			if !ctx.jsonOutput {
				elapsed := result.Elapsed.Seconds()
				if len(result.Courses) > 0 {
					fmt.Fprintf(out, "Found %d courses in %.2fs\n", len(result.Courses), elapsed)
				} else {
					fmt.Fprintf(out, "No courses found (scanned in %.2fs)\n", elapsed)
				}
				if result.Canceled {
					fmt.Fprintln(out, "Scan canceled, keeping courses found so far.")
				}
			}

			var stats *catalog.Statistics
			if ing != nil {
				// Store what was found even when canceled.
				storeCtx := context.WithoutCancel(sigCtx)
				start := time.Now()
				if !ctx.jsonOutput && len(result.Courses) > 0 {
					fmt.Fprintln(out, "\nStoring in database...")
				}
				if _, err := ing.Store(storeCtx, result.Courses); err != nil {
					return err
				}
				if err := ing.RecordScan(result); err != nil {
					logger.Warn("failed to record scan", "scan_id", result.ID, "error", err)
				}
				if !ctx.jsonOutput && len(result.Courses) > 0 {
					fmt.Fprintf(out, "Stored %d courses in %.2fs\n", len(result.Courses), time.Since(start).Seconds())
				}

				s, err := store.Statistics()
				if err != nil {
					return err
				}
				stats = &s
			} else {
				s := catalog.Summarize(result.Courses)
				stats = &s
			}

			if ctx.jsonOutput {
				return report.WriteJSON(out, report.ScanJSON{
					ID:         result.ID,
					Root:       result.Root,
					Canceled:   result.Canceled,
					ElapsedMS:  result.Elapsed.Milliseconds(),
					Courses:    report.FromCatalog(result.Courses),
					Summary:    report.Summarize(result.Courses),
					Statistics: stats,
				})
			}

			if len(result.Courses) == 0 {
				fmt.Fprintln(out, "\nNo courses found in library directory.")
				return scanErr
			}
			for _, c := range result.Courses {
				if err := report.WriteCourse(out, c); err != nil {
					return err
				}
			}
			if err := report.WriteSummary(out, result.Courses); err != nil {
				return err
			}
			if ing != nil {
				fmt.Fprintln(out, "Database Statistics:")
			} else {
				fmt.Fprintln(out, "Scan Statistics:")
			}
			if err := report.WriteStatistics(out, tableStyle(out), *stats); err != nil {
				return err
			}
			return scanErr
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Library root (default from config)")
	cmd.Flags().BoolVar(&clearDB, "clear-db", false, "Clear the database before scanning")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Lessons resolved in parallel per course (default from config)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Scan and print without touching the database")
	cmd.Flags().BoolVar(&prune, "prune", false, "Remove stored lessons whose video no longer exists")

	return cmd
}
