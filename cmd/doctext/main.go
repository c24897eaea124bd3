package main

import (
	"os"

	"github.com/doctext/doctext/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
