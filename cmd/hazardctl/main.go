package main

import (
	"fmt"
	"os"

	"github.com/kirillkom/chemical-safety-registry/internal/adapters/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hazardctl:", err)
		os.Exit(1)
	}
}
