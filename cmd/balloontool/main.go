package main

import (
	"fmt"
	"log"
	"os"

	"github.com/quintrel/balloontool/internal/cli"
)

func main() {
	// Logging goes to stderr; stdout carries command output.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
