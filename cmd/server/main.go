// Package main is the entry point for the CV builder API and its tooling.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvbuilder",
	Short: "CV builder API server",
	Long:  "cvbuilder serves the step-by-step CV editor API: wizard sessions, stored CVs, live preview, PDF export and AI suggestions.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
