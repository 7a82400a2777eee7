// Command flix manages a movie rental inventory and customer queues.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/flix/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
