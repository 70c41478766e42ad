// Package metrics writes analysis results to CSV logs that accumulate across
// runs.
package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Record is anything that renders to one CSV row.
type Record interface {
	Record() []string
}

// CSVLog appends rows to a CSV file with a fixed header. The file is created
// with its header on first write; later writes read the existing rows,
// append the new ones and rewrite the file, so earlier rows are preserved in
// order.
type CSVLog struct {
	path   string
	header []string
}

// pathLocks serializes writers to the same file within this process.
var pathLocks sync.Map

func lockFor(path string) *sync.Mutex {
	mu, _ := pathLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// NewCSVLog returns a log writing to path with the given header.
func NewCSVLog(path string, header []string) *CSVLog {
	return &CSVLog{path: filepath.Clean(path), header: header}
}

// Path returns the file the log writes to.
func (l *CSVLog) Path() string {
	return l.path
}

// Append adds records to the end of the log.
func (l *CSVLog) Append(records ...Record) error {
	if len(records) == 0 {
		return nil
	}

	mu := lockFor(l.path)
	mu.Lock()
	defer mu.Unlock()

	existing, err := l.read()
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		existing = [][]string{l.header}
	}
	for _, r := range records {
		existing = append(existing, r.Record())
	}
	return l.write(existing)
}

// Rows returns the data rows of the log, without the header. A missing file
// has no rows.
func (l *CSVLog) Rows() ([][]string, error) {
	mu := lockFor(l.path)
	mu.Lock()
	defer mu.Unlock()

	all, err := l.read()
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[1:], nil
}

func (l *CSVLog) read() ([][]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// write replaces the file through a temp file in the same directory.
func (l *CSVLog) write(rows [][]string) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", l.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", l.path, err)
	}
	return nil
}
