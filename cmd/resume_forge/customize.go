package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/generation"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/rendering"
	"github.com/jonathan/resume-forge/internal/templates"
)

var customizeCommand = &cobra.Command{
	Use:   "customize [resume] [job]",
	Short: "Customize a resume for a specific job description",
	Long: `Extracts text from a resume file (.txt, .pdf, .docx, .doc), tailors it to a
job description with Gemini, and renders the result as PDF, DOCX, or raw LaTeX.

The job description can be given as a second positional argument (a file path if
one exists, literal text otherwise), or explicitly via --job-text, --job-file,
or --job-url.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCustomize,
}

var (
	customizeConfigPath   string
	customizeJobText      string
	customizeJobFile      string
	customizeJobURL       string
	customizeOutput       string
	customizeFormat       string
	customizeTemplate     string
	customizeInstructions string
	customizeAPIKey       string
	customizeModel        string
	customizeSinglePass   bool
	customizeNoSaveLaTeX  bool
	customizeUseBrowser   bool
	customizeVerbose      bool
)

func init() {
	// Config file flag (processed first)
	customizeCommand.Flags().StringVar(&customizeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	customizeCommand.Flags().StringVar(&customizeJobText, "job-text", "", "Job description as literal text")
	customizeCommand.Flags().StringVarP(&customizeJobFile, "job-file", "j", "", "Path to a job description file")
	customizeCommand.Flags().StringVar(&customizeJobURL, "job-url", "", "URL to fetch the job posting from")
	customizeCommand.Flags().StringVarP(&customizeOutput, "output", "o", "", "Output file path (defaults to customized_resume.<format>)")
	customizeCommand.Flags().StringVarP(&customizeFormat, "format", "f", "pdf", "Output format: pdf, docx, or tex")
	customizeCommand.Flags().StringVarP(&customizeTemplate, "template", "t", "", "Path to a LaTeX template overriding the built-in one")
	customizeCommand.Flags().StringVarP(&customizeInstructions, "instructions", "i", "", "Additional instructions for the model")
	customizeCommand.Flags().StringVar(&customizeModel, "model", "", "Gemini model to use for all generation passes")
	customizeCommand.Flags().BoolVar(&customizeSinglePass, "single-pass", false, "Skip the LaTeX validation pass")
	customizeCommand.Flags().BoolVar(&customizeNoSaveLaTeX, "no-save-latex", false, "Do not keep the intermediate LaTeX source")
	customizeCommand.Flags().BoolVar(&customizeUseBrowser, "use-browser", false, "Use a headless browser for SPA job sites (requires Chrome)")
	customizeCommand.Flags().BoolVarP(&customizeVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	customizeCommand.Flags().StringVar(&customizeAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(customizeCommand)
}

func runCustomize(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if customizeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(customizeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if customizeVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", customizeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if len(args) > 0 {
		cfg.Resume = args[0]
	}
	var jobArg string
	if len(args) > 1 {
		jobArg = args[1]
	}
	if cmd.Flags().Changed("job-text") {
		cfg.JobText = customizeJobText
	}
	if cmd.Flags().Changed("job-file") {
		cfg.JobFile = customizeJobFile
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = customizeJobURL
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = customizeOutput
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = customizeFormat
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = customizeTemplate
	}
	if cmd.Flags().Changed("instructions") {
		cfg.Instructions = customizeInstructions
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = customizeAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = customizeModel
	}
	if cmd.Flags().Changed("single-pass") {
		cfg.SinglePass = customizeSinglePass
	}
	if cmd.Flags().Changed("no-save-latex") {
		cfg.NoSaveLaTeX = customizeNoSaveLaTeX
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = customizeUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = customizeVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{Format: "pdf"})
	if cfg.Output == "" {
		cfg.Output = "customized_resume." + cfg.Format
	}

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("a resume file is required (positional argument or config)")
	}
	format := pipeline.OutputFormat(cfg.Format)
	switch format {
	case pipeline.FormatPDF, pipeline.FormatDOCX, pipeline.FormatTeX:
	default:
		return &pipeline.UnsupportedOutputFormatError{Format: format}
	}
	job, err := selectJobSource(cfg, jobArg)
	if err != nil {
		return err
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(llm.EnvAPIKey)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%s environment variable or --api-key flag is required", llm.EnvAPIKey)
	}

	// Step 6: Resolve the template override, if any
	template := ""
	if cfg.Template != "" {
		template, err = templates.Load(cfg.Template)
		if err != nil {
			return fmt.Errorf("failed to load template: %w", err)
		}
	}

	// Step 7: Assemble the pipeline
	modelConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		modelConfig = modelConfig.WithModelForAllTiers(cfg.Model)
	}
	client, err := llm.NewClient(ctx, modelConfig, cfg.APIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	gen := generation.New(client, generation.WithWarnFunc(func(message string) {
		fmt.Fprintln(os.Stderr, "Warning: "+message)
	}))
	runner := pipeline.NewRunner(gen, rendering.NewEngine())

	opts := pipeline.RunOptions{
		ResumePath:         cfg.Resume,
		Job:                job,
		OutputPath:         cfg.Output,
		Format:             format,
		CustomInstructions: cfg.Instructions,
		KeepSource:         !cfg.NoSaveLaTeX,
		TwoPass:            !cfg.SinglePass,
		UseBrowser:         cfg.UseBrowser,
		Template:           template,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Printf("[%s] %s\n", event.Step, event.Message)
		}
	}

	result := runner.Run(ctx, opts)
	if !result.Success {
		return errors.New(result.Err)
	}

	fmt.Printf("Resume customized successfully: %s\n", result.OutputPath)
	if result.SourcePath != "" && result.SourcePath != result.OutputPath {
		fmt.Printf("LaTeX source saved to: %s\n", result.SourcePath)
	}
	if result.Degraded {
		fmt.Fprintf(os.Stderr, "Note: %s\n", result.Warning)
	}
	return nil
}

// selectJobSource picks exactly one job description source from the merged
// configuration and the optional positional argument.
func selectJobSource(cfg config.Config, jobArg string) (pipeline.JobSource, error) {
	sources := 0
	for _, v := range []string{jobArg, cfg.JobText, cfg.JobFile, cfg.JobURL} {
		if v != "" {
			sources++
		}
	}
	switch {
	case sources == 0:
		return pipeline.JobSource{}, fmt.Errorf("a job description is required (positional argument, --job-text, --job-file, or --job-url)")
	case sources > 1:
		return pipeline.JobSource{}, fmt.Errorf("provide exactly one job description source")
	case jobArg != "":
		return pipeline.JobAuto(jobArg), nil
	case cfg.JobText != "":
		return pipeline.JobText(cfg.JobText), nil
	case cfg.JobFile != "":
		return pipeline.JobFile(cfg.JobFile), nil
	default:
		return pipeline.JobURL(cfg.JobURL), nil
	}
}
