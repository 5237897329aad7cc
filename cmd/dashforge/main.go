package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// API keys commonly live in a local .env during development.
	_ = godotenv.Load()
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
