package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/mj1618/a11y-snapshot/internal/l10n"
	"github.com/mj1618/a11y-snapshot/internal/output"
	"github.com/mj1618/a11y-snapshot/internal/platform"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the languages descriptions can be synthesized in",
	Args:  cobra.NoArgs,
	RunE:  runLocales,
}

func init() {
	rootCmd.AddCommand(localesCmd)
}

// localeInfo is one entry of the locales output.
type localeInfo struct {
	Locale    string `yaml:"locale"              json:"locale"`
	Coverage  string `yaml:"coverage"            json:"coverage"`
	Direction string `yaml:"direction"           json:"direction"`
	System    bool   `yaml:"system,omitempty"    json:"system,omitempty"`
}

func runLocales(cmd *cobra.Command, args []string) error {
	return output.Print(listLocales(l10n.Default(), platform.SystemLocale()))
}

// listLocales reports phrase coverage per locale, flagging the one that
// matches the system locale's language.
func listLocales(b *l10n.Bundle, system string) []localeInfo {
	total := len(b.Keys())
	systemBase, _ := language.Make(system).Base()
	out := make([]localeInfo, 0, len(b.Locales()))
	for _, l := range b.Locales() {
		out = append(out, localeInfo{
			Locale:    l,
			Coverage:  fmt.Sprintf("%d/%d", b.Coverage(l), total),
			Direction: string(platform.DirectionForLocale(l)),
			System:    system != "" && sameBase(l, systemBase),
		})
	}
	return out
}

func sameBase(locale string, base language.Base) bool {
	b, _ := language.Make(locale).Base()
	return b == base
}
