// Package report renders and exports ranked folder sizes.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/dirrank/internal/dirrank"
)

const (
	// FormatCSV writes one record per folder with a header row.
	FormatCSV = "csv"
	// FormatJSON writes the whole result as an indented JSON document.
	FormatJSON = "json"
)

// Formats lists the supported export formats.
//
//nolint:gochecknoglobals // Config constant
var Formats = []string{FormatCSV, FormatJSON}

// Header is the CSV header row.
//
//nolint:gochecknoglobals // Config constant
var Header = []string{"folder_path", "size_bytes", "size_human", "size_mb", "size_gb"}

const (
	mebibyte = 1 << 20
	gibibyte = 1 << 30
)

// HumanBytes formats n with binary units stepping at 1024, e.g. "0 B", "1.5 KiB".
func HumanBytes(n uint64) string {
	return humanize.IBytes(n)
}

// DefaultFilename returns the timestamped export name for format at t.
func DefaultFilename(t time.Time, format string) string {
	return fmt.Sprintf("disk_usage_%s.%s", t.Format("20060102_150405"), format)
}

// WriteCSV writes one record per folder, largest first.
func WriteCSV(res *dirrank.Result, writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, f := range res.Folders {
		record := []string{
			f.Path,
			strconv.FormatUint(f.Size, 10),
			HumanBytes(f.Size),
			strconv.FormatFloat(float64(f.Size)/mebibyte, 'f', 2, 64),
			strconv.FormatFloat(float64(f.Size)/gibibyte, 'f', 2, 64),
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV record for %q: %w", f.Path, err)
		}
	}

	w.Flush()

	return w.Error()
}

// WriteJSON outputs the result in JSON format.
func WriteJSON(res *dirrank.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// Write renders res to writer in the given format.
func Write(res *dirrank.Result, format string, writer io.Writer) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(res, writer)
	case FormatJSON:
		return WriteJSON(res, writer)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// Export writes res to the file at path, creating parent directories.
// The file is only replaced once the whole report has been written.
func Export(res *dirrank.Result, format, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := Write(res, format, tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("closing output file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("setting output file mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("writing output file %q: %w", path, err)
	}

	return nil
}
