package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <corpus.csv|corpus.tsv>",
	Short: "Score a corpus file and persist the run",
	Long:  "Loads a delimited corpus, codes every record against the taxonomy, stores the run, and prints its summary.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "also write the full scored corpus as CSV")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.AnalyzeFile(args[0])
	if err != nil {
		return err
	}

	fmt.Print(formatRunHeader(res.Meta))
	fmt.Print(formatSummary(res.Summary))

	if analyzeOut != "" {
		if err := a.ExportScored(analyzeOut, res.Records); err != nil {
			return err
		}
		fmt.Printf("⚡ scored corpus written to %s%s%s\n", colorCyan, analyzeOut, colorReset)
	}
	return nil
}
