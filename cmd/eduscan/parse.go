package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/eduscan/internal/report"
	"github.com/vmunix/eduscan/pkg/lessontitle"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "parse <filename>...",
		Short: "Show the title derived from filenames",
		Long: `Run the filename title parser over the given names without touching
the library or database.

Examples:
  eduscan parse "01 - Introduction to Python.mp4"
  eduscan parse "Lesson 3 - Loops.mkv" "Chapter 2 - Types.mp4"
  eduscan parse -f names.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if inputFile != "" {
				fromFile, err := readNames(inputFile)
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				return errors.New("filename or --file required")
			}

			out := cmd.OutOrStdout()
			if ctx.jsonOutput {
				items := make([]map[string]any, 0, len(names))
				for _, name := range names {
					item := map[string]any{"filename": name, "title": nil}
					if title, ok := lessontitle.Parse(name); ok {
						item["title"] = title
					}
					items = append(items, item)
				}
				return report.WriteJSON(out, items)
			}
			fmt.Fprintln(out, report.ParseTable(tableStyle(out), names, lessontitle.Parse))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read filenames from file (one per line)")

	return cmd
}

// readNames reads non-blank lines from path.
func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
