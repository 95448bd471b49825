// Package main provides the entry point for the resume-forge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_forge",
	Short: "AI-powered resume customization",
	Long:  "resume_forge tailors an existing resume to a specific job description using Google Gemini and renders the result as PDF, DOCX, or LaTeX.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
