package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"shop-erp/internal/core"
)

// CSVStore keeps one CSV file per row kind in a directory. Order rows have a
// variable number of fields.
type CSVStore struct {
	dir string
}

var _ RowStore = (*CSVStore)(nil)

func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

func (s *CSVStore) path(kind core.RowKind) string {
	return filepath.Join(s.dir, string(kind)+".csv")
}

// Load reads every kind's file. A missing file loads as no rows. A line the
// CSV reader cannot parse is left out and listed in the snapshot's
// Unreadable rows; the rest of the file still loads.
func (s *CSVStore) Load(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot
	for _, kind := range core.RowKinds {
		if err := ctx.Err(); err != nil {
			return core.Snapshot{}, err
		}
		rows, unreadable, err := s.readFile(kind)
		if err != nil {
			return core.Snapshot{}, fmt.Errorf("failed to read %s: %w", kind, err)
		}
		snap.SetRows(kind, rows)
		snap.Unreadable = append(snap.Unreadable, unreadable...)
	}
	return snap, nil
}

func (s *CSVStore) readFile(kind core.RowKind) ([]core.Row, []core.SkippedRow, error) {
	f, err := os.Open(s.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var (
		rows       []core.Row
		unreadable []core.SkippedRow
		perr       *csv.ParseError
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.As(err, &perr) {
			unreadable = append(unreadable, core.SkippedRow{
				Kind:     kind,
				Position: perr.StartLine - 1,
				Reason:   perr.Error(),
			})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, core.Row(rec))
	}
	return rows, unreadable, nil
}

// Save rewrites every kind's file. Each file is written to a temporary file
// and renamed into place, so a crash never leaves a half-written file.
func (s *CSVStore) Save(ctx context.Context, snap core.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	for _, kind := range core.RowKinds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeFile(kind, snap.Rows(kind)); err != nil {
			return fmt.Errorf("failed to write %s: %w", kind, err)
		}
	}
	return nil
}

func (s *CSVStore) writeFile(kind core.RowKind, rows []core.Row) error {
	tmp, err := os.CreateTemp(s.dir, string(kind)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(kind))
}
