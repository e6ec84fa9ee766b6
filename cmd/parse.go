package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Print the elements a screen reader visits, in order",
	Long: `Parse one or more view tree documents (YAML or JSON, "-" for stdin) and print
each element the screen reader visits in traversal order: its description
and hint, shape, activation point, custom content, rotors and context.

Several files are parsed concurrently and printed in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addFilterFlags(parseCmd)
	parseCmd.Flags().String("save", "", "Also save the (unfiltered) markers of a single document to this file for later diffing")
	parseCmd.Flags().Int("jobs", 4, "Max documents parsed at once")
}

func runParse(cmd *cobra.Command, args []string) error {
	p, err := newParser(cmd)
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}
	filter, err := getMarkerFilter(cmd)
	if err != nil {
		return err
	}
	save, _ := cmd.Flags().GetString("save")
	if save != "" && len(args) > 1 {
		return fmt.Errorf("--save needs exactly one document, got %d", len(args))
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	files, err := parseFiles(cmd.Context(), args, jobs, func(path string) (parsedFile, error) {
		return parseFile(p, path, opts)
	})
	if err != nil {
		return err
	}

	if save != "" {
		if err := model.SaveMarkers(save, files[0].markers); err != nil {
			return err
		}
	}

	results := make([]output.ParseResult, len(files))
	for i, f := range files {
		results[i] = f.result(args[i])
		results[i].Markers = filter.apply(results[i].Markers)
	}
	if len(results) == 1 {
		return output.Print(results[0])
	}
	return output.Print(results)
}

// parseFiles runs parse for every path with at most jobs in flight and
// returns the results in path order. The first error cancels the rest.
func parseFiles(ctx context.Context, paths []string, jobs int, parse func(string) (parsedFile, error)) ([]parsedFile, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	files := make([]parsedFile, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := parse(path)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
