// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	parquet "github.com/parquet-go/parquet-go"
)

// Format selects the metadata file type.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatParquet:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

var csvHeader = []string{"filename", "spectrogram_path", "label", "original_path"}

// WriteCSV writes a header row and one row per record.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range recs {
		row := []string{r.Filename, r.SpectrogramPath, strconv.Itoa(int(r.Label)), r.OriginalPath}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

type parquetRow struct {
	Filename        string `parquet:"filename"`
	SpectrogramPath string `parquet:"spectrogram_path"`
	Label           int32  `parquet:"label"`
	OriginalPath    string `parquet:"original_path"`
}

// WriteParquet writes recs as a snappy-compressed Parquet file.
func WriteParquet(w io.Writer, recs []Record) error {
	rows := make([]parquetRow, len(recs))
	for i, r := range recs {
		rows[i] = parquetRow{
			Filename:        r.Filename,
			SpectrogramPath: r.SpectrogramPath,
			Label:           int32(r.Label),
			OriginalPath:    r.OriginalPath,
		}
	}

	pw := parquet.NewGenericWriter[parquetRow](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}

	return nil
}

// ReadParquet reads records written by WriteParquet.
func ReadParquet(r io.ReaderAt) ([]Record, error) {
	pr := parquet.NewGenericReader[parquetRow](r)
	defer pr.Close()

	var out []Record
	batch := make([]parquetRow, 256)
	for {
		n, err := pr.Read(batch)
		for _, row := range batch[:n] {
			out = append(out, Record{
				Filename:        row.Filename,
				SpectrogramPath: row.SpectrogramPath,
				Label:           Label(row.Label),
				OriginalPath:    row.OriginalPath,
			})
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading parquet rows: %w", err)
		}
	}
}

// WriteSplits writes train, val and test tables into dir.
func WriteSplits(dir string, s Splits, format Format) error {
	var write func(io.Writer, []Record) error
	switch format {
	case FormatCSV:
		write = WriteCSV
	case FormatParquet:
		write = WriteParquet
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	parts := []struct {
		name string
		recs []Record
	}{
		{"train", s.Train},
		{"val", s.Val},
		{"test", s.Test},
	}
	for _, p := range parts {
		path := filepath.Join(dir, p.name+"."+string(format))
		if err := writeFile(path, p.recs, write); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, recs []Record, write func(io.Writer, []Record) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := write(f, recs); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
