// Command infiniter evaluates lazy numeric sequences from the command line and
// serves them over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/kbukum/infiniter/cmd/infiniter/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
