// Command eo is the scheduler's CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/zhenglier/eo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
