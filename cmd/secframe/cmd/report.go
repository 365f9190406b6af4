package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reportBy      string
	reportSummary bool
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Report on a stored run",
	Long:  "Prints the corpus summary for a stored run, or a per-period table with --by. No run id selects the latest run.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportBy, "by", "", "bucket records by period: quarter, month, or year")
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "print the corpus summary (default when --by is absent)")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}

	if reportBy == "" || reportSummary {
		meta, sum, err := a.Report(id)
		if err != nil {
			return err
		}
		fmt.Print(formatRunHeader(meta))
		fmt.Print(formatSummary(sum))
	}

	if reportBy != "" {
		meta, buckets, err := a.PeriodReport(id, reportBy)
		if err != nil {
			return err
		}
		if !reportSummary {
			fmt.Print(formatRunHeader(meta))
		}
		fmt.Print(formatPeriodTable(buckets))
	}
	return nil
}
