package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dukerupert/addrcheck/internal/address"
)

// ReadFile reads input records from an .xlsx or .csv file.
func ReadFile(path string) ([]address.InputRecord, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	return Read(f, format)
}

// Read reads input records in the given format.
// The first row is the header; cells are read as text, so ZIP codes keep
// their leading zeros. Rows with no content are ignored.
func Read(r io.Reader, format Format) ([]address.InputRecord, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, ErrUnsupportedFormat(string(format))
	}
	if err != nil {
		return nil, err
	}

	return toRecords(rows)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

// columns maps header names to column indexes. Address 2 may be absent.
type columns struct {
	address1, address2, city, state, zip int
}

func headerIndex(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	cols := columns{address2: -1}
	required := []struct {
		name string
		dst  *int
	}{
		{ColAddress1, &cols.address1},
		{ColCity, &cols.city},
		{ColState, &cols.state},
		{ColZIP, &cols.zip},
	}
	for _, c := range required {
		i, ok := idx[c.name]
		if !ok {
			return columns{}, ErrMissingColumn(c.name)
		}
		*c.dst = i
	}
	if i, ok := idx[ColAddress2]; ok {
		cols.address2 = i
	}

	return cols, nil
}

func toRecords(rows [][]string) ([]address.InputRecord, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]address.InputRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, address.InputRecord{
			AddressLine1: cell(row, cols.address1),
			AddressLine2: cell(row, cols.address2),
			City:         cell(row, cols.city),
			State:        cell(row, cols.state),
			PostalCode:   cell(row, cols.zip),
		})
	}

	return records, nil
}

// cell returns the trimmed value at i; excelize drops trailing empty cells,
// so short rows are normal.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
