package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/opencourse-ai/tutor-cli/internal/adapters/driving/cli"
)

func main() {
	// API keys may come from a local .env during development.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
