package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nhle/taskboard/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
