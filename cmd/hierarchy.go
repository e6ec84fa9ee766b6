package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
)

var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy FILE",
	Short: "Print elements nested in the containers that hold them",
	Long: `Parse a view tree document and print its elements nested inside the lists,
landmarks, data tables, tab bars and labelled groups that contain them.
Siblings are ordered by the first element they contain, so reading the
leaves top to bottom gives the same order as the parse command.`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchy,
}

func init() {
	rootCmd.AddCommand(hierarchyCmd)
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	p, err := newParser(cmd)
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}
	f, err := parseFile(p, args[0], opts)
	if err != nil {
		return err
	}
	nodes := f.hierarchy
	if nodes == nil {
		nodes = []model.HierarchyNode{}
	}
	return output.Print(output.HierarchyResult{Source: args[0], Hierarchy: nodes})
}
