package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	eventFrom string
	eventTo   string
	eventRun  string
)

var eventCmd = &cobra.Command{
	Use:   "event <name>",
	Short: "Summarize one event window of a stored run",
	Long:  "Slices a stored run to the inclusive [--from, --to] window and prints the window's summary.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvent,
}

func init() {
	eventCmd.Flags().StringVar(&eventFrom, "from", "", "window start, inclusive (2006-01-02 or RFC3339)")
	eventCmd.Flags().StringVar(&eventTo, "to", "", "window end, inclusive")
	eventCmd.Flags().StringVar(&eventRun, "run", "", "run id (default: latest run)")
	eventCmd.MarkFlagRequired("from")
	eventCmd.MarkFlagRequired("to")
}

func runEvent(cmd *cobra.Command, args []string) error {
	from, err := parseWindowBound(eventFrom, false)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseWindowBound(eventTo, true)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("window end %s precedes start %s", eventTo, eventFrom)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	rep, err := a.EventWindow(eventRun, args[0], from, to)
	if err != nil {
		return err
	}

	fmt.Print(formatRunHeader(rep.Meta))
	fmt.Printf("%s⚡ event %q%s │ %s → %s\n",
		colorBold, rep.Name, colorReset,
		rep.From.Format(dateLayout), rep.To.Format(dateLayout))
	if rep.Bucket.Records == 0 {
		fmt.Println("  no records in window")
		return nil
	}
	fmt.Print(formatSummary(rep.Summary))
	return nil
}

// windowLayouts are accepted for --from and --to.
var windowLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parseWindowBound parses a window bound. A date-only end bound extends to
// the last instant of that day so the window stays inclusive.
func parseWindowBound(s string, end bool) (time.Time, error) {
	for _, layout := range windowLayouts {
		ts, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if end && layout == "2006-01-02" {
			ts = ts.Add(24*time.Hour - time.Nanosecond)
		}
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
