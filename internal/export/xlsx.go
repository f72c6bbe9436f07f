package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

const sheetName = "Sheet1"

// WriteXLSX writes the dataset as a single-sheet workbook with the same
// layout as WriteCSV.
func WriteXLSX(w io.Writer, ds *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	if err := sw.SetRow("A1", []any{timestampHeader, ds.Column}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range ds.Readings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []any{r.Timestamp.Format(reading.TimestampLayout), r.Value}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReadXLSX loads a dataset written by WriteXLSX from the first sheet.
func ReadXLSX(r io.Reader) (*dataset.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty workbook")
	}
	header := rows[0]
	if len(header) != 2 || header[0] != timestampHeader {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	ds := &dataset.Dataset{Column: header[1]}
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != 2 {
			return nil, fmt.Errorf("row %d: %d cells, want 2", line, len(row))
		}
		ts, err := time.Parse(reading.TimestampLayout, row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: timestamp: %w", line, err)
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: value: %w", line, err)
		}
		ds.Readings = append(ds.Readings, reading.Reading{Timestamp: ts, Value: v})
	}
	return ds, nil
}
