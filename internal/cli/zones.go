package cli

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/quintrel/balloontool/internal/config"
	"github.com/quintrel/balloontool/internal/geometry"
	"github.com/quintrel/balloontool/internal/overlay"
	"github.com/quintrel/balloontool/internal/page"
)

var (
	zonesImage   string
	zonesOverlay string
	zonesFormat  string
)

// zoneReport is the zones command output.
type zoneReport struct {
	Boundary geometry.Rect `json:"boundary" yaml:"boundary"`
	Rows     int           `json:"rows" yaml:"rows"`
	Cols     int           `json:"cols" yaml:"cols"`
	Labels   []string      `json:"labels" yaml:"labels"`
}

// zonesCmd represents the zones command
var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Detect the drawing boundary and report its zone grid",
	Long: `Zones finds the innermost content frame on a drawing page, derives the
zone grid from its aspect ratio, and reports the boundary and cell
labels. With --overlay, the grid is rendered over the page image for
visual verification.

Example:
  balloontool zones --image page.png
  balloontool zones --image page.png --overlay grid.png`,
	RunE: runZones,
}

func init() {
	rootCmd.AddCommand(zonesCmd)

	zonesCmd.Flags().StringVar(&zonesImage, "image", "", "page image (required)")
	zonesCmd.Flags().StringVar(&zonesOverlay, "overlay", "", "write grid overlay PNG to this path")
	zonesCmd.Flags().StringVar(&zonesFormat, "format", "json", "output format: json or yaml")
	_ = zonesCmd.MarkFlagRequired("image")
}

func runZones(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	img, err := page.Load(zonesImage)
	if err != nil {
		return err
	}

	grid, rect, ok := detectGrid(img, cfg.Zone)
	if !ok {
		return fmt.Errorf("no content boundary detected in %s", zonesImage)
	}

	if zonesOverlay != "" {
		rendered, err := overlay.Render(img, grid, cfg.Overlay)
		if err != nil {
			return fmt.Errorf("overlay render failed: %w", err)
		}
		if err := imaging.Save(rendered, zonesOverlay); err != nil {
			return fmt.Errorf("failed to save overlay: %w", err)
		}
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", zonesOverlay)
		}
	}

	report := zoneReport{
		Boundary: rect,
		Rows:     grid.Rows,
		Cols:     grid.Cols,
		Labels:   grid.CellLabels(),
	}
	return writeResult(report, zonesFormat, "")
}
