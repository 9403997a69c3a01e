//go:build !testcoverage

package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (won't error if missing)
	_ = godotenv.Load()

	if err := run(os.Args, DefaultConfig()); err != nil {
		fatal("%v", err)
	}
}
