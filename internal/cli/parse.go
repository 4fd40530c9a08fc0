package cli

import (
	"github.com/spf13/cobra"

	"github.com/quintrel/balloontool/internal/dimension"
)

var (
	parseUpper  string
	parseLower  string
	parseFormat string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse a dimension string",
	Long: `Parse interprets one dimension string the way the reconciliation
pipeline does: nominal value, tolerances, diameter/radius/angle prefixes
and GD&T frames. Unrecognized text yields an unclassified record rather
than an error.

Example:
  balloontool parse "⌀25.4 +0.1/-0.05"
  balloontool parse "12,5" --upper 0.2 --lower 0.1`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseUpper, "upper", "", "upper tolerance (overrides inline)")
	parseCmd.Flags().StringVar(&parseLower, "lower", "", "lower tolerance (overrides inline)")
	parseCmd.Flags().StringVar(&parseFormat, "format", "json", "output format: json or yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	var parsed dimension.Parsed
	if parseUpper != "" || parseLower != "" {
		parsed = dimension.ParseWithTolerances(args[0], parseUpper, parseLower)
	} else {
		parsed = dimension.Parse(args[0])
	}
	return writeResult(parsed, parseFormat, "")
}
