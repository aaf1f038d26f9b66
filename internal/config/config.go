// =============================================================================
// OCR Giro Codec - Configuration Module
// =============================================================================
//
// This module loads and validates the tool configuration. The codec
// library itself is configuration-free; everything here only concerns the
// CLI surface (directories, report naming, logging).
//
// CONFIGURATION FILE:
//   A single YAML file, by default config.yaml in the working directory,
//   overridable with the --config flag.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config holds the tool configuration.
type Config struct {
	// InputDir is the directory scanned for OCR files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated files (reports, rendered
	// OCR files) are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory processed input files are moved to.
	// Files are only moved after successful processing.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ReportNameFormat defines report file names. Placeholders:
	//   {uuid}      - a random UUID
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {input}     - base name of the input file, extension stripped
	// Default: "{input}_{timestamp}.xlsx"
	ReportNameFormat string `yaml:"report_name_format"`

	// LogFile is the path of the tool log file. Empty means stderr only.
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() *Config {
	return &Config{
		InputDir:         "./input",
		OutputDir:        "./output",
		ArchiveDir:       "./archive",
		ReportNameFormat: "{input}_{timestamp}.xlsx",
	}
}

// Load reads the configuration from the given YAML file. A missing file is
// not an error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for missing required settings.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.ReportNameFormat == "" {
		return fmt.Errorf("report_name_format must not be empty")
	}
	return nil
}

// ReportName expands the report name format for the given input file base
// name.
func (c *Config) ReportName(inputBase string) string {
	name := c.ReportNameFormat
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{input}", inputBase)
	return name
}
