// =============================================================================
// OCR Giro Codec - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// is the base command all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ocrgiro)
//   ├── inspectCmd  (ocrgiro inspect <file>)
//   ├── validateCmd (ocrgiro validate <file>)
//   ├── reportCmd   (ocrgiro report <file>)
//   └── versionCmd  (ocrgiro version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kfjeldsa/ocr-giro-codec/internal/config"
)

// cfgFile holds the path to the configuration file. Overridable with the
// --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// logger is the tool-wide logger, configured by loadConfig.
var logger = log.New(os.Stderr, "", log.LstdFlags)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ocrgiro",
	Short: "OCR Giro codec - parse, validate, and report on Nets OCR/AvtaleGiro files",
	Long: `ocrgiro is a CLI tool for working with the fixed-width OCR file format
used by the Nets clearing network for OCR Giro and AvtaleGiro batches.

Key features:
  - Parse an OCR file into its transmission/assignment/transaction tree
  - Validate files, including a byte-exact round-trip check
  - Render an XLSX summary report of a file's contents

Example usage:
  ocrgiro inspect payments.ocr              # Print the file's structure
  ocrgiro validate payments.ocr             # Parse and round-trip check
  ocrgiro report payments.ocr               # Write an XLSX summary
  ocrgiro inspect --config ./my.yaml f.ocr  # Use a custom configuration`,
	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the tool configuration and wires up the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger = log.New(io.MultiWriter(os.Stderr, file), "", log.LstdFlags)
	}
	if !verbose {
		// Keep the default logger quiet unless asked; errors still reach
		// the user through the command's return value.
		logger.SetOutput(io.Discard)
		if cfg.LogFile != "" {
			file, _ := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
			if file != nil {
				logger.SetOutput(file)
			}
		}
	}
	return cfg, nil
}
