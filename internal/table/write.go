package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/stratclass/internal/model"
)

// Written records one committed output file
type Written struct {
	Path string
	Rows int
}

// CommitError reports a failure after some files were already moved into place
type CommitError struct {
	Path      string
	Committed []Written
	Err       error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s (%d files already written): %v", e.Path, len(e.Committed), e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// WriteAll writes every subset to dir. Files are first written into a
// staging directory inside dir and renamed into place only after all of them
// succeed, so a write failure leaves no output behind.
func WriteAll(dir string, t *model.Table, subsets []model.Subset) ([]Written, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	staging, err := os.MkdirTemp(dir, ".stratclass-staging-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory in %s: %w", dir, err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	var g errgroup.Group
	for _, s := range subsets {
		s := s
		g.Go(func() error {
			path := filepath.Join(staging, s.FileName)
			if err := WriteSubset(path, t, s.Rows); err != nil {
				return fmt.Errorf("write %s: %w", filepath.Join(dir, s.FileName), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := make([]Written, 0, len(subsets))
	for _, s := range subsets {
		dst := filepath.Join(dir, s.FileName)
		if err := os.Rename(filepath.Join(staging, s.FileName), dst); err != nil {
			return written, &CommitError{Path: dst, Committed: written, Err: err}
		}
		written = append(written, Written{Path: dst, Rows: len(s.Rows)})
	}

	return written, nil
}

// WriteSubset writes the selected rows to path with the uid column first
func WriteSubset(path string, t *model.Table, rows []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, model.UIDColumn)
	header = append(header, t.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for _, idx := range rows {
		record[0] = strconv.Itoa(idx)
		copy(record[1:], t.Rows[idx])
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
