package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dukerupert/addrcheck/internal/address"
	"github.com/dukerupert/addrcheck/internal/storage"
)

// OutputRecord is one row of the results spreadsheet.
type OutputRecord struct {
	InputAddress          string
	City                  string
	State                 string
	PostalCode            string
	FinalZIP              string
	ResponseAddressLine   string
	ValidationGranularity string
	GeocodeGranularity    string
	PossibleNextAction    string
}

// NewOutputRecord flattens an input row and its classification.
func NewOutputRecord(rec address.InputRecord, c address.Classification) OutputRecord {
	return OutputRecord{
		InputAddress:          rec.AddressLine(),
		City:                  rec.City,
		State:                 rec.State,
		PostalCode:            rec.PostalCode,
		FinalZIP:              c.FinalZIP,
		ResponseAddressLine:   strings.Join(c.ResponseAddressLines, ", "),
		ValidationGranularity: string(c.ValidationGranularity),
		GeocodeGranularity:    string(c.GeocodeGranularity),
		PossibleNextAction:    c.PossibleNextAction,
	}
}

// Values returns the row cells in OutputHeader order.
func (r OutputRecord) Values() []string {
	return []string{
		r.InputAddress,
		r.City,
		r.State,
		r.PostalCode,
		r.FinalZIP,
		r.ResponseAddressLine,
		r.ValidationGranularity,
		r.GeocodeGranularity,
		r.PossibleNextAction,
	}
}

// Writer persists the full set of output rows accumulated so far.
type Writer interface {
	Write(ctx context.Context, rows []OutputRecord) error
}

// FileWriter renders rows to a spreadsheet and replaces key in storage
// on every call.
type FileWriter struct {
	store  storage.Storage
	key    string
	format Format
}

// NewFileWriter creates a writer for key; the format comes from its extension.
func NewFileWriter(store storage.Storage, key string) (*FileWriter, error) {
	format, err := FormatFor(key)
	if err != nil {
		return nil, err
	}
	return &FileWriter{store: store, key: key, format: format}, nil
}

// Exists reports whether output from an earlier run is already stored
// under the writer's key. The first Write replaces it.
func (w *FileWriter) Exists(ctx context.Context) (bool, error) {
	return w.store.Exists(ctx, w.key)
}

// Write renders header plus rows and stores them under the writer's key.
func (w *FileWriter) Write(ctx context.Context, rows []OutputRecord) error {
	var (
		buf         *bytes.Buffer
		contentType string
		err         error
	)
	switch w.format {
	case FormatXLSX:
		buf, err = encodeXLSX(rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		buf, err = encodeCSV(rows)
		contentType = "text/csv"
	default:
		return ErrUnsupportedFormat(w.key)
	}
	if err != nil {
		return err
	}

	if _, err := w.store.Put(ctx, w.key, buf, contentType); err != nil {
		return fmt.Errorf("failed to store output: %w", err)
	}
	return nil
}

func encodeXLSX(rows []OutputRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), OutputSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, OutputHeader); err != nil {
		return nil, err
	}
	for i, r := range rows {
		if err := setRow(f, i+2, r.Values()); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(OutputSheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

func encodeCSV(rows []OutputRecord) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	cw := csv.NewWriter(buf)

	if err := cw.Write(OutputHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf, nil
}
