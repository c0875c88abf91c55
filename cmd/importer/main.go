package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Credentials live in .env during development; absence is fine in
	// production where the environment is set by the unit file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
