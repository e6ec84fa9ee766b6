package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Compare two traversal snapshots",
	Long: `Compare two marker lists saved with "parse --save" (or printed by parse as
YAML or JSON) and report what was added, removed or changed.

By default markers are matched by identity (identifier, label, static traits
and context), so an inserted element does not shift every later one. Use
--by-index to match position by position instead.

With --documents, OLD and NEW are view tree documents that are parsed first.

The command exits with status 1 when differences are found and --exit-code
is set.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool("documents", false, "Treat OLD and NEW as view tree documents and parse them first")
	diffCmd.Flags().Bool("by-index", false, "Match markers by traversal index instead of identity")
	diffCmd.Flags().Bool("exit-code", false, "Exit with status 1 when the snapshots differ")
}

// diffIndexResult is the output of a positional diff.
type diffIndexResult struct {
	Old     string               `yaml:"old"     json:"old"`
	New     string               `yaml:"new"     json:"new"`
	Changes []model.MarkerChange `yaml:"changes" json:"changes"`
}

// diffHashResult is the output of an identity diff.
type diffHashResult struct {
	Old  string           `yaml:"old"  json:"old"`
	New  string           `yaml:"new"  json:"new"`
	Diff model.MarkerDiff `yaml:"diff" json:"diff"`
}

// errSnapshotsDiffer makes the command fail without printing anything extra.
var errSnapshotsDiffer = errors.New("snapshots differ")

func runDiff(cmd *cobra.Command, args []string) error {
	documents, _ := cmd.Flags().GetBool("documents")
	byIndex, _ := cmd.Flags().GetBool("by-index")
	exitCode, _ := cmd.Flags().GetBool("exit-code")

	prev, curr, err := loadPair(cmd, args[0], args[1], documents)
	if err != nil {
		return err
	}

	var differ bool
	if byIndex {
		changes := model.DiffMarkers(prev, curr)
		differ = len(changes) > 0
		if changes == nil {
			changes = []model.MarkerChange{}
		}
		err = output.Print(diffIndexResult{Old: args[0], New: args[1], Changes: changes})
	} else {
		d := model.DiffMarkersByHash(prev, curr)
		differ = !d.Empty()
		err = output.Print(diffHashResult{Old: args[0], New: args[1], Diff: d})
	}
	if err != nil {
		return err
	}
	if exitCode && differ {
		cmd.SilenceErrors = true
		return errSnapshotsDiffer
	}
	return nil
}

// loadPair returns the markers of both sides, parsing documents when asked.
func loadPair(cmd *cobra.Command, oldPath, newPath string, documents bool) ([]model.Marker, []model.Marker, error) {
	if !documents {
		prev, err := model.LoadMarkers(oldPath)
		if err != nil {
			return nil, nil, err
		}
		curr, err := model.LoadMarkers(newPath)
		if err != nil {
			return nil, nil, err
		}
		return prev, curr, nil
	}

	p, err := newParser(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return nil, nil, err
	}
	files, err := parseFiles(cmd.Context(), []string{oldPath, newPath}, 2, func(path string) (parsedFile, error) {
		return parseFile(p, path, opts)
	})
	if err != nil {
		return nil, nil, err
	}
	return files[0].markers, files[1].markers, nil
}
