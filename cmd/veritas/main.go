package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/veritas-checks/veritas/internal/cli"
)

func main() {
	// Best effort: API keys may live in a local .env during development
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
