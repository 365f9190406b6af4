package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored analysis runs",
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	metas, err := a.Runs()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("no stored runs. Analyze a corpus with: secframe analyze <corpus.csv>")
		return nil
	}

	fmt.Print(formatRuns(metas))
	return nil
}
