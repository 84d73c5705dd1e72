// Command namegen picks random person names from the embedded dataset and
// compiles the dataset source. Run "namegen help" for usage.
package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/namekit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
