package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pochkachaiki/sensorgen/internal/anomaly"
	"github.com/pochkachaiki/sensorgen/internal/dataset"
	"github.com/pochkachaiki/sensorgen/internal/models/reading"
)

const timestampHeader = "Timestamp"

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes the dataset as a two-column table with a header row.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{timestampHeader, ds.Column}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range ds.Readings {
		if err := cw.Write([]string{r.Timestamp.Format(reading.TimestampLayout), formatValue(r.Value)}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScoredCSV writes the dataset with the detector's score and label
// columns appended.
func WriteScoredCSV(w io.Writer, ds *dataset.Dataset, res anomaly.Result) error {
	if len(res.Scores) != len(ds.Readings) || len(res.Labels) != len(ds.Readings) {
		return fmt.Errorf("%d readings but %d scores and %d labels",
			len(ds.Readings), len(res.Scores), len(res.Labels))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{timestampHeader, ds.Column, "scores", "anomaly"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range ds.Readings {
		row := []string{
			r.Timestamp.Format(reading.TimestampLayout),
			formatValue(r.Value),
			formatValue(res.Scores[i]),
			strconv.Itoa(res.Labels[i]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a dataset written by WriteCSV. The value column name is
// taken from the header.
func ReadCSV(r io.Reader) (*dataset.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != timestampHeader {
		return nil, fmt.Errorf("unexpected first column %q", header[0])
	}

	ds := &dataset.Dataset{Column: header[1]}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := time.Parse(reading.TimestampLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: timestamp: %w", line, err)
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value: %w", line, err)
		}
		ds.Readings = append(ds.Readings, reading.Reading{Timestamp: ts, Value: v})
	}
	return ds, nil
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
