// Package writer persists assembled day rows. The two local output roots
// are independent sinks written through identically; an optional S3
// archiver mirrors each day as a parquet object.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gridio/logger"
)

// Sink writes one day's table for one domain and reports the destination
// it wrote to.
type Sink interface {
	WriteDay(day, name string, header []string, rows [][]string) (string, error)
}

// LocalSink writes `<root>/<day>/<name>.csv` files.
type LocalSink struct {
	Root string
}

func (s LocalSink) WriteDay(day, name string, header []string, rows [][]string) (string, error) {
	path := filepath.Join(s.Root, day, name+".csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		file.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		file.Close()
		return "", fmt.Errorf("write rows: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return path, nil
}

// Create opens a streaming destination at `<root>/<day>/<name>.csv`,
// creating the day directory as needed. Used by the frequency splitter,
// which keeps many days open at once.
func (s LocalSink) Create(day, name string) (io.WriteCloser, error) {
	path := filepath.Join(s.Root, day, name+".csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return os.Create(path)
}

// Path reports where WriteDay and Create place a file.
func (s LocalSink) Path(day, name string) string {
	return filepath.Join(s.Root, day, name+".csv")
}

// WriteAll writes the same day table through every sink and logs a row
// count per destination.
func WriteAll(sinks []Sink, day, name string, header []string, rows [][]string) error {
	log := logger.GetLogger().WithComponent("writer")
	for _, sink := range sinks {
		dest, err := sink.WriteDay(day, name, header, rows)
		if err != nil {
			return err
		}
		log.WithFields(logger.Fields{
			"rows":        len(rows),
			"destination": dest,
		}).Info(fmt.Sprintf("wrote %d rows to %s", len(rows), dest))
	}
	return nil
}
