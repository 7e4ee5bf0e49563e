// Package manifest loads the optional tabular file that selects which FASTA
// files a run processes. CSV and XLSX variants normalize to the same
// single-column list of filenames; anything else is rejected before any
// stage runs.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnName is the required header of the single manifest column.
const ColumnName = "fasta_files"

// Format identifies the manifest file format, resolved once from the file
// extension at load time.
type Format int

const (
	FormatCSV  Format = iota // Delimited text, parsed with encoding/csv.
	FormatXLSX               // Spreadsheet, parsed from the first sheet.
)

// ErrUnsupportedFormat is returned for manifest paths whose extension is
// neither .csv nor .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported manifest format (use .csv or .xlsx)")

// DetectFormat resolves the parser variant from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads the manifest at path and returns the filenames from its single
// fasta_files column, in file order. The manifest must have exactly one
// column with that header; a wrong column count or header aborts the run
// before any external process starts.
func Load(path string) ([]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = readCSV(path)
	case FormatXLSX:
		rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	return extractColumn(path, rows)
}

// readCSV parses the whole file into rows. FieldsPerRecord is left at zero
// so encoding/csv enforces a uniform column count against the header row;
// a ragged file surfaces as a parse error with a line number.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return csv.NewReader(f).ReadAll()
}

// readXLSX parses the first sheet of the workbook into rows.
func readXLSX(path string) ([][]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return wb.GetRows(sheets[0])
}

// extractColumn validates the normalized rows and returns the filename list.
func extractColumn(path string, rows [][]string) ([]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("manifest %s is empty", path)
	}

	header := rows[0]
	if len(header) != 1 {
		return nil, fmt.Errorf("manifest %s: expected exactly 1 column, got %d", path, len(header))
	}
	if strings.TrimSpace(header[0]) != ColumnName {
		return nil, fmt.Errorf("manifest %s: missing %q column (got %q)", path, ColumnName, header[0])
	}

	var files []string
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue // excelize yields empty slices for blank spreadsheet rows
		}
		if len(row) != 1 {
			return nil, fmt.Errorf("manifest %s: row %d has %d columns, expected 1", path, i+2, len(row))
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}
