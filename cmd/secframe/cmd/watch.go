package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/secframe/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Analyze every corpus dropped into a directory",
	Long:  "Watches a drop directory; each new or changed .csv/.tsv file is scored and stored as a run. Ctrl-C stops.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.Watch(args[0], func(res *app.AnalyzeResult, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠ %v\n", err)
			return
		}
		fmt.Print(formatRunHeader(res.Meta))
		fmt.Print(formatSummary(res.Summary))
	})
	if err != nil {
		return err
	}

	fmt.Printf("⚡ watching %s%s%s for corpus drops\n", colorCyan, args[0], colorReset)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\n⚡ shutting down...")
	return a.StopWatch()
}
