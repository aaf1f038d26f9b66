// =============================================================================
// OCR Giro Codec - Report Command
// =============================================================================
//
// This file defines the 'report' command, which parses an OCR file and
// writes an XLSX summary workbook: one overview sheet for the
// transmission, and one sheet per assignment listing its transactions.
//
// COMMAND USAGE:
//   ocrgiro report <file> [--archive]
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/kfjeldsa/ocr-giro-codec/internal/config"
	"github.com/kfjeldsa/ocr-giro-codec/internal/objects"
	"github.com/kfjeldsa/ocr-giro-codec/pkg/utils"
)

// archiveInput moves the input file to the archive directory after a
// successful report.
var archiveInput bool

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Write an XLSX summary of an OCR file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runReport(cfg, args[0])
	},
}

func init() {
	reportCmd.Flags().BoolVar(
		&archiveInput,
		"archive",
		false,
		"Move the input file to the archive directory after reporting",
	)
	rootCmd.AddCommand(reportCmd)
}

func runReport(cfg *config.Config, path string) error {
	data, err := utils.ReadOCRFile(path)
	if err != nil {
		return err
	}

	transmission, err := objects.Parse(data)
	if err != nil {
		return err
	}

	workbook, err := buildReport(transmission)
	if err != nil {
		return err
	}

	target := filepath.Join(cfg.OutputDir, cfg.ReportName(utils.BaseName(path)))
	if err := workbook.SaveAs(target); err != nil {
		return fmt.Errorf("failed to write report %s: %w", target, err)
	}
	logger.Printf("wrote report %s", target)
	fmt.Printf("Report written to %s\n", target)

	if archiveInput {
		archived, err := utils.ArchiveFile(path, cfg.ArchiveDir)
		if err != nil {
			return err
		}
		logger.Printf("archived %s to %s", path, archived)
	}
	return nil
}

// buildReport renders the transmission tree into a workbook.
func buildReport(transmission *objects.Transmission) (*excelize.File, error) {
	workbook := excelize.NewFile()

	overview := "Overview"
	if err := workbook.SetSheetName("Sheet1", overview); err != nil {
		return nil, err
	}

	numRecords, err := transmission.NumRecords()
	if err != nil {
		return nil, err
	}
	rows := [][]any{
		{"Transmission", transmission.Number},
		{"Data transmitter", transmission.DataTransmitter},
		{"Data recipient", transmission.DataRecipient},
		{"Assignments", len(transmission.Assignments)},
		{"Transactions", transmission.NumTransactions()},
		{"Records", numRecords},
		{"Total amount (NOK)", transmission.TotalAmount().StringFixed(2)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := workbook.SetSheetRow(overview, cell, &row); err != nil {
			return nil, err
		}
	}

	for i, assignment := range transmission.Assignments {
		sheet := fmt.Sprintf("Assignment %d", i+1)
		if _, err := workbook.NewSheet(sheet); err != nil {
			return nil, err
		}

		header := []any{"Number", "Kind", "Date", "Amount (NOK)", "KID", "Reference"}
		if err := workbook.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, err
		}

		for j, entity := range assignment.Transactions {
			row := entityReportRow(entity)
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
		}
	}
	return workbook, nil
}

func entityReportRow(entity objects.Entity) []any {
	var kind, date, amount, kid, reference string

	switch e := entity.(type) {
	case *objects.PaymentRequest:
		kind = fmt.Sprintf("payment request (type %d)", int(e.Type))
		date = e.Date.Format("2006-01-02")
		amount = e.Amount.StringFixed(2)
		kid = e.KID
		reference = e.Reference
	case *objects.Transaction:
		kind = fmt.Sprintf("ocr giro (type %d)", int(e.Type))
		date = e.Date.Format("2006-01-02")
		amount = e.Amount.StringFixed(2)
		kid = e.KID
		reference = e.Reference
	case *objects.Agreement:
		kind = fmt.Sprintf("agreement (%d)", int(e.RegistrationType))
		kid = e.KID
	}

	return []any{entity.EntityNumber(), kind, date, amount, kid, reference}
}
