package sheet

import "fmt"

const (
	codeInvalid = "invalid"
)

// SheetError represents a spreadsheet-specific error with a code and message.
type SheetError struct {
	Code    string
	Message string
}

func (e *SheetError) Error() string {
	return e.Message
}

// ErrorCode returns the error code.
func (e *SheetError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *SheetError) ErrorMessage() string {
	return e.Message
}

// ErrNoSheets is returned when a workbook has no worksheets.
var ErrNoSheets = &SheetError{Code: codeInvalid, Message: "workbook has no sheets"}

// ErrEmptyInput is returned when the input has no header row.
var ErrEmptyInput = &SheetError{Code: codeInvalid, Message: "input has no header row"}

// ErrMissingColumn creates an error for a required column that is not in the header row.
func ErrMissingColumn(column string) error {
	return &SheetError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("required column %q not found", column),
	}
}

// ErrUnsupportedFormat creates an error for a file extension the package cannot handle.
func ErrUnsupportedFormat(name string) error {
	return &SheetError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unsupported file format: %s (want .xlsx or .csv)", name),
	}
}
