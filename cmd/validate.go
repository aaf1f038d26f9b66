// =============================================================================
// OCR Giro Codec - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which parses an OCR file and
// verifies it renders back byte-for-byte. Optionally it also checks
// AvtaleGiro due dates against the submission window.
//
// COMMAND USAGE:
//   ocrgiro validate <file> [--due-dates]
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kfjeldsa/ocr-giro-codec/internal/objects"
	"github.com/kfjeldsa/ocr-giro-codec/internal/validation"
	"github.com/kfjeldsa/ocr-giro-codec/pkg/utils"
)

// checkDueDates also validates payment request due dates against the
// current submission window.
var checkDueDates bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse an OCR file and verify it round-trips byte-for-byte",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		return runValidate(args[0])
	},
}

func init() {
	validateCmd.Flags().BoolVar(
		&checkDueDates,
		"due-dates",
		false,
		"Also check AvtaleGiro due dates against the submission window",
	)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := utils.ReadOCRFile(path)
	if err != nil {
		return err
	}

	transmission, err := objects.Parse(data)
	if err != nil {
		return fmt.Errorf("%s is not a valid OCR file: %w", path, err)
	}

	rendered, err := transmission.ToOCR()
	if err != nil {
		return err
	}
	if rendered != strings.Trim(strings.ReplaceAll(data, "\r\n", "\n"), " \t\n") {
		return fmt.Errorf("%s does not round-trip byte-for-byte", path)
	}

	if checkDueDates {
		err := objects.ValidateDueDates(transmission, validation.DefaultClock(), nil)
		if err != nil {
			return fmt.Errorf("%s has invalid due dates: %w", path, err)
		}
	}

	fmt.Printf("%s: OK (%d transactions, %s NOK)\n",
		path, transmission.NumTransactions(), transmission.TotalAmount().StringFixed(2))
	return nil
}
