package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pochkachaiki/sensorgen/internal/dataset"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormats(names []string) ([]Format, error) {
	out := make([]Format, 0, len(names))
	for _, n := range names {
		switch f := Format(strings.ToLower(strings.TrimSpace(n))); f {
		case FormatCSV, FormatXLSX:
			out = append(out, f)
		default:
			return nil, fmt.Errorf("unknown output format %q", n)
		}
	}
	return out, nil
}

// FileSink writes every dataset it receives to Dir, once per format.
type FileSink struct {
	Dir     string
	Formats []Format
}

func NewFileSink(dir string, formats []Format) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileSink{Dir: dir, Formats: formats}, nil
}

func (s *FileSink) Write(ctx context.Context, ds *dataset.Dataset) error {
	for _, f := range s.Formats {
		path := filepath.Join(s.Dir, ds.File+"."+string(f))

		var err error
		switch f {
		case FormatXLSX:
			err = WriteFile(path, func(w io.Writer) error { return WriteXLSX(w, ds) })
		default:
			err = WriteFile(path, func(w io.Writer) error { return WriteCSV(w, ds) })
		}
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "dataset written", "path", path, "rows", len(ds.Readings))
	}
	return nil
}

// ReadDataset loads <dir>/<name>.<format> for the first format in formats
// whose file exists.
func ReadDataset(dir, name string, formats []Format) (*dataset.Dataset, error) {
	for _, f := range formats {
		path := filepath.Join(dir, name+"."+string(f))
		file, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		var ds *dataset.Dataset
		switch f {
		case FormatXLSX:
			ds, err = ReadXLSX(file)
		default:
			ds, err = ReadCSV(file)
		}
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ds, nil
	}
	return nil, fmt.Errorf("%s: no dataset file in formats %v: %w", filepath.Join(dir, name), formats, os.ErrNotExist)
}

// WriteFile creates path and fills it with write. A partially written file
// is removed.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
