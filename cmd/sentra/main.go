// Package main provides the entry point for the Sentra workflow auditor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sentra",
	Short: "Sentra AI workflow risk auditor",
	Long:  "Sentra assesses the legal and ethical risk of AI-driven workflows step by step, suggests safer rewrites for risky steps, and tracks how risk evolves across revisions.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
