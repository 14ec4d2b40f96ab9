// Package table reads the input CSV and persists classified subsets.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/stratclass/internal/model"
)

var (
	// ErrMissingColumn is returned when the input lacks the text column
	ErrMissingColumn = errors.New("missing text column")
	// ErrUIDColumn is returned when the input already carries a uid column
	ErrUIDColumn = errors.New("input already has a uid column")
	// ErrEmptyInput is returned when the input has no header row
	ErrEmptyInput = errors.New("input has no header")
)

const utf8BOM = "\ufeff"

// Load reads a CSV file with a header row. Short records are padded with
// empty strings; records longer than the header are rejected.
func Load(path, textColumn string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path, textColumn)
}

// Read parses CSV from r. name is used in error messages.
func Read(r io.Reader, name, textColumn string) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyInput)
		}
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	columns := append([]string(nil), header...)

	for _, c := range columns {
		if c == model.UIDColumn {
			return nil, fmt.Errorf("%s: %w", name, ErrUIDColumn)
		}
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		if len(record) > len(columns) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read %s: line %d has %d fields, header has %d", name, line, len(record), len(columns))
		}
		for len(record) < len(columns) {
			record = append(record, "")
		}
		rows = append(rows, record)
	}

	t, ok := model.NewTable(columns, rows, textColumn)
	if !ok {
		return nil, fmt.Errorf("%w %q in %s (columns: %s)", ErrMissingColumn, textColumn, name, strings.Join(columns, ", "))
	}
	return t, nil
}
