// secframe codes Spanish-language social-media corpora against a
// securitization-framing taxonomy. Single binary, flag-driven.
package main

import (
	"os"

	"github.com/corey/secframe/cmd/secframe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
