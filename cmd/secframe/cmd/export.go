package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportThreshold int
	exportOut       string
)

var exportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export high-intensity records as CSV",
	Long:  "Writes the records scoring at or above the threshold, strongest first, with per-category counts. No run id selects the latest run.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportThreshold, "threshold", 3, "minimum security intensity")
	exportCmd.Flags().StringVar(&exportOut, "out", "high_intensity.csv", "output CSV path")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}

	n, meta, err := a.ExportHighIntensity(id, exportOut, exportThreshold)
	if err != nil {
		return err
	}

	fmt.Print(formatRunHeader(meta))
	fmt.Printf("⚡ %d records at intensity >= %d written to %s%s%s\n",
		n, exportThreshold, colorCyan, exportOut, colorReset)
	return nil
}
