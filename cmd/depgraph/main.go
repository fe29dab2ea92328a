package main

import (
	"os"

	"github.com/matzehuels/depgraph/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
