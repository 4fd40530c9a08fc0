package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quintrel/balloontool/internal/cluster"
	"github.com/quintrel/balloontool/internal/config"
	"github.com/quintrel/balloontool/internal/extract"
	"github.com/quintrel/balloontool/internal/page"
	"github.com/quintrel/balloontool/internal/zone"
)

var (
	clusterImage   string
	clusterText    string
	clusterObjects string
	clusterOCR     bool
	clusterOut     string
	clusterFormat  string
	clusterIoU     float64
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Reconcile detections into a numbered callout list",
	Long: `Cluster merges text-extraction spans and object-detector boxes for one
drawing page into deduplicated, zone-tagged callouts in reading order.

Either detection source may be absent; the page is processed with
whatever is available. With --ocr and no --text file, text spans are
extracted from the page image directly.

Example:
  balloontool cluster --image page.png --text text.json --objects obj.json
  balloontool cluster --image page.png --ocr --format yaml`,
	RunE: runCluster,
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().StringVar(&clusterImage, "image", "", "page image (enables boundary detection and zones)")
	clusterCmd.Flags().StringVar(&clusterText, "text", "", "text detections JSON file")
	clusterCmd.Flags().StringVar(&clusterObjects, "objects", "", "object detections JSON file")
	clusterCmd.Flags().BoolVar(&clusterOCR, "ocr", false, "extract text from the page image with OCR")
	clusterCmd.Flags().StringVarP(&clusterOut, "output", "o", "", "output path (default: stdout)")
	clusterCmd.Flags().StringVar(&clusterFormat, "format", "json", "output format: json or yaml")
	clusterCmd.Flags().Float64Var(&clusterIoU, "match-iou", -1, "cross-source match IoU threshold (overrides config)")
}

func runCluster(cmd *cobra.Command, args []string) error {
	if clusterText == "" && clusterObjects == "" && !clusterOCR {
		return fmt.Errorf("nothing to cluster: provide --text, --objects or --ocr")
	}
	if clusterOCR && clusterImage == "" {
		return fmt.Errorf("--ocr requires --image")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if clusterIoU >= 0 {
		cfg.Cluster.MatchIoU = clusterIoU
	}

	grid := loadGrid(clusterImage, cfg)

	var textDets, objDets []cluster.Detection
	if clusterText != "" {
		textDets, err = readTextDetections(clusterText)
		if err != nil {
			return err
		}
	} else if clusterOCR {
		img, err := page.Load(clusterImage)
		if err != nil {
			return err
		}
		opts := extract.Options{
			Language:      cfg.Extract.Language,
			MinConfidence: cfg.Extract.MinConfidence,
		}
		if grid != nil {
			// Restrict OCR to the content frame; border text and
			// title-block noise never reach clustering.
			opts.Boundary = &grid.Boundary
		}
		if cfg.Extract.DualRotation {
			textDets, err = extract.DualPass(img, opts)
		} else {
			textDets, err = extract.TextDetections(img, 0, opts)
		}
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
	}
	if clusterObjects != "" {
		objDets, err = readObjectDetections(clusterObjects)
		if err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Clustering %d text and %d object detections\n", len(textDets), len(objDets))
	}

	callouts := cluster.New(cfg.Cluster, grid).Cluster(textDets, objDets)

	return writeResult(callouts, clusterFormat, clusterOut)
}

// loadGrid loads the page and derives the zone grid; a missing image
// path or failed boundary detection yields a nil grid, not an error,
// so clustering still runs with zones falling back to "N/A".
func loadGrid(imagePath string, cfg config.Config) *zone.Grid {
	if imagePath == "" {
		return nil
	}
	img, err := page.Load(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load page image: %v\n", err)
		return nil
	}
	grid, _, _ := detectGrid(img, cfg.Zone)
	return grid
}

// writeResult marshals v to the requested format, to a file or stdout.
func writeResult(v interface{}, format, outPath string) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml":
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outPath)
	}
	return nil
}
