// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags, which always win over file values.
type Config struct {
	// Inputs
	Resume       string `json:"resume,omitempty" validate:"omitempty,file"`   // Path to the resume file
	JobText      string `json:"job_text,omitempty"`                           // Literal job description text
	JobFile      string `json:"job_file,omitempty" validate:"omitempty,file"` // Path to a job description file
	JobURL       string `json:"job_url,omitempty" validate:"omitempty,url"`   // URL to fetch the job posting from
	Template     string `json:"template,omitempty" validate:"omitempty,file"` // Path to a LaTeX template override
	Instructions string `json:"instructions,omitempty"`                       // Extra instructions for the model

	// Outputs
	Output string `json:"output,omitempty"`                                         // Output file path
	Format string `json:"format,omitempty" validate:"omitempty,oneof=pdf docx tex"` // Output format

	// Behavior
	APIKey      string `json:"api_key,omitempty"`       // Gemini API key
	Model       string `json:"model,omitempty"`         // Model override for all generation tiers
	SinglePass  bool   `json:"single_pass,omitempty"`   // Skip the validation pass
	NoSaveLaTeX bool   `json:"no_save_latex,omitempty"` // Do not keep the intermediate LaTeX source
	UseBrowser  bool   `json:"use_browser,omitempty"`   // Use a headless browser for SPA job sites
	Verbose     bool   `json:"verbose,omitempty"`       // Print detailed progress information
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	sources := 0
	for _, v := range []string{c.JobText, c.JobFile, c.JobURL} {
		if v != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'job_text', 'job_file' and 'job_url' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: field %q failed %q validation", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from
// defaults. This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.JobText == "" {
		result.JobText = defaults.JobText
	}
	if result.JobFile == "" {
		result.JobFile = defaults.JobFile
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Instructions == "" {
		result.Instructions = defaults.Instructions
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
