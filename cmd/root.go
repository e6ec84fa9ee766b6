package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mj1618/a11y-snapshot/internal/logging"
	"github.com/mj1618/a11y-snapshot/internal/output"
	"github.com/mj1618/a11y-snapshot/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "a11y-snapshot",
	Short: "Turn accessibility view trees into screen reader traversal snapshots",
	Long: `Parse a captured view tree with accessibility metadata into the ordered list of
elements a screen reader visits, with what it announces for each, where each
one sits on screen and where it is activated.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		levelStr, _ := rootCmd.PersistentFlags().GetString("log-level")
		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		logFormatStr, _ := rootCmd.PersistentFlags().GetString("log-format")
		logFormat, err := logging.ParseFormat(logFormatStr)
		if err != nil {
			return err
		}
		logging.Init(level, logFormat, os.Stderr)

		// Smart default: humans at a terminal get the numbered legend,
		// pipes get structured YAML.
		formatStr, _ := rootCmd.PersistentFlags().GetString("format")
		if formatStr == "" {
			if output.IsOutputPiped() {
				formatStr = string(output.FormatYAML)
			} else {
				formatStr = string(output.FormatLegend)
			}
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		output.OutputFormat = format

		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}

// addGlobalFlags registers the flags every command inherits.
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("format", "", "Output format: yaml, json, legend (default: legend on a terminal, yaml when piped)")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.String("layout-direction", "", "Layout direction: ltr or rtl (default: from the document, then the system locale)")
	flags.String("idiom", "", "Device idiom: phone, pad or unspecified (default: from the document)")
	flags.String("verbosity", "verbose", "Announcement verbosity: verbose, minimal or traits-first")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")
}
