package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var wipeForce bool

var wipeCmd = &cobra.Command{
	Use:   "wipe [run-id]",
	Short: "Delete one run, or the whole store",
	Long:  "Deletes the named run, or with no argument every stored run. Asks for confirmation unless --force.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeForce, "force", false, "Skip confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	target := "all stored runs"
	if len(args) == 1 {
		target = "run " + args[0]
	}

	if !wipeForce {
		fmt.Printf("⚠ This will delete %s. Continue? [y/N] ", target)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("cancelled")
			return nil
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 {
		if err := a.Store.DeleteRun(args[0]); err != nil {
			return err
		}
		fmt.Printf("⚡ run %s deleted\n", args[0])
		return nil
	}

	if err := a.Store.Wipe(); err != nil {
		return err
	}
	fmt.Println("⚡ all runs deleted")
	return nil
}
