package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/secframe/dictionaries"
	"github.com/corey/secframe/internal/domain/dictionary"
)

var dictKeywords bool

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect the coding taxonomy",
	Long:  "Loads and validates the taxonomy (embedded Spanish set, or --dict directory) and prints its groups and categories.",
	Args:  cobra.NoArgs,
	RunE:  runDict,
}

func init() {
	dictCmd.Flags().BoolVar(&dictKeywords, "keywords", false, "print full keyword lists")
}

func runDict(cmd *cobra.Command, args []string) error {
	var store *dictionary.Store
	var err error
	if flagDict != "" {
		store, err = dictionary.LoadFromFS(os.DirFS(flagDict), ".")
	} else {
		store, err = dictionary.LoadFromFS(dictionaries.FS, "es")
	}
	if err != nil {
		return err
	}

	fmt.Print(formatDict(store, dictKeywords))
	return nil
}
