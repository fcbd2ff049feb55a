package main

import (
	"alcyxob/workout-tracker/internal/cli"
	"fmt"
	"os"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
