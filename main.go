// =============================================================================
// OCR Giro Codec - Main Entry Point
// =============================================================================
//
// This is the main entry point for the ocrgiro CLI. It initializes the
// Cobra CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   ocrgiro inspect <file>   - Print an OCR file's structure
//   ocrgiro validate <file>  - Parse and round-trip check an OCR file
//   ocrgiro report <file>    - Write an XLSX summary of an OCR file
//   ocrgiro version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : the codec core (records, objects, converters, ...)
//   - pkg/       : shared utilities (encoded file I/O)
//
// =============================================================================

package main

import (
	"github.com/kfjeldsa/ocr-giro-codec/cmd"
)

func main() {
	cmd.Execute()
}
