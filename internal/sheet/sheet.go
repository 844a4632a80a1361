// Package sheet reads input addresses from, and writes classified results
// to, tabular files. The format is picked from the file extension:
// ".xlsx" uses excelize, ".csv" uses encoding/csv.
package sheet

import (
	"path/filepath"
	"strings"
)

// Input column headers.
const (
	ColAddress1 = "Address 1"
	ColAddress2 = "Address 2"
	ColCity     = "City"
	ColState    = "State"
	ColZIP      = "ZIP"
)

// OutputSheetName is the worksheet name used for xlsx output.
const OutputSheetName = "Address Validation Results"

// OutputHeader is the output column order.
var OutputHeader = []string{
	"Input Address",
	"City",
	"State",
	"Postal Code",
	"Final ZIP",
	"Response Address Line",
	"Validation Granularity",
	"Geocode Granularity",
	"Possible Next Action",
}

// Format is a supported tabular file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFor picks the format from a file name.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat(name)
	}
}
