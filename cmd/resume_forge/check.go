package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/rendering"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Check that external dependencies are available",
	Long:  "Probes for pdflatex, pandoc, and the Gemini API key and reports what is missing.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCommand)
}

func runCheck(_ *cobra.Command, _ []string) error {
	readiness := pipeline.CheckReadiness(context.Background(), rendering.NewEngine(), os.Getenv(llm.EnvAPIKey))

	fmt.Println("Dependency check:")
	printStatus("pdflatex (PDF rendering)", readiness.PDFLaTeX, "install TeX Live or MiKTeX")
	printStatus("pandoc (DOCX rendering)", readiness.Pandoc, "install from https://pandoc.org")
	printStatus(llm.EnvAPIKey+" (Gemini access)", readiness.APIKeySet, "set the environment variable or use --api-key")

	if !readiness.Ready {
		return fmt.Errorf("some dependencies are missing")
	}
	fmt.Println("All dependencies are available.")
	return nil
}

func printStatus(name string, ok bool, hint string) {
	if ok {
		fmt.Printf("  [ok]      %s\n", name)
		return
	}
	fmt.Printf("  [missing] %s: %s\n", name, hint)
}
