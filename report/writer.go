package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/blame"
)

// Writer persists projected report rows as a UTF-8 CSV file.
type Writer struct {
	log *log.Log
}

// NewWriter creates a report writer.
func NewWriter(logger *log.Log) *Writer {
	return &Writer{log: logger}
}

// Write creates (or replaces) the report file at path, header row first.
func (w *Writer) Write(rows []ReportRow, path string) blame.Blame {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return blame.NewBlame(blame.ErrReportWriteFailed, "cannot create report directory").
				WithComponent(blame.Configuration).
				WithField("path", path).
				WithCause(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return blame.NewBlame(blame.ErrReportWriteFailed, "cannot create report file").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return blame.NewBlame(blame.ErrReportWriteFailed, "cannot write report header").
			WithCause(err)
	}
	for _, row := range rows {
		if err := cw.Write(row.fields()); err != nil {
			return blame.NewBlame(blame.ErrReportWriteFailed, "cannot write report row").
				WithCause(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return blame.NewBlame(blame.ErrReportWriteFailed, "cannot flush report").
			WithCause(err)
	}

	if w.log != nil {
		w.log.Info("status report written",
			log.String("path", path),
			log.Int("rows", len(rows)),
		)
	}
	return nil
}
