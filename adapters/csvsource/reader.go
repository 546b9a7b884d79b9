// Package csvsource reads the personnel data file. Upstream spreadsheets
// arrive in UTF-8 or a legacy Chinese encoding, so the reader decodes with a
// fallback chain before any row is parsed.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/record"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Required data file columns, matched by header name. start_date and
// remarks are recognized but optional.
var requiredColumns = []string{"person_name", "document_type", "expiry_date"}

// Reader loads raw rows from a CSV data file.
type Reader struct {
	log *log.Log
}

// NewReader creates a data file reader.
func NewReader(logger *log.Log) *Reader {
	return &Reader{log: logger}
}

// Read loads the whole data file. It fails only on file-level problems
// (missing file, undecodable bytes, missing required columns); individual
// bad rows are the record builder's concern.
func (r *Reader) Read(path string) ([]record.Row, blame.Blame) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, blame.NewBlame(blame.ErrInvalidDataFile, "cannot read data file").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}

	text, encodingName, b := decode(raw)
	if b != nil {
		return nil, b.WithField("path", path)
	}
	if r.log != nil {
		r.log.Debug("data file decoded",
			log.String("path", path),
			log.String("encoding", encodingName),
		)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1 // ragged rows are skipped downstream, not fatal
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, blame.NewBlame(blame.ErrInvalidDataFile, "cannot parse data file as CSV").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}
	if len(all) == 0 {
		return nil, blame.NewBlame(blame.ErrInvalidDataFile, "data file is empty").
			WithComponent(blame.Configuration).
			WithField("path", path)
	}

	cols, b := mapColumns(all[0])
	if b != nil {
		return nil, b.WithField("path", path)
	}

	rows := make([]record.Row, 0, len(all)-1)
	for i, fields := range all[1:] {
		rows = append(rows, record.Row{
			Index:        i + 2, // header is line 1
			PersonName:   field(fields, cols, "person_name"),
			DocumentType: field(fields, cols, "document_type"),
			StartDate:    field(fields, cols, "start_date"),
			ExpiryDate:   field(fields, cols, "expiry_date"),
			Remarks:      field(fields, cols, "remarks"),
		})
	}

	if r.log != nil {
		r.log.Info("data file loaded",
			log.String("path", path),
			log.Int("rows", len(rows)),
		)
	}
	return rows, nil
}

// decode returns the file content as UTF-8 text, trying UTF-8 first and the
// legacy Chinese encodings after. The x/text decoders substitute U+FFFD for
// bytes they cannot map instead of returning an error, so a decode only
// counts as clean when its output carries no replacement rune; otherwise a
// GB18030 four-byte sequence would be silently mangled by the GBK pass.
func decode(raw []byte) (string, string, blame.Blame) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	if decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw); err == nil && clean(decoded) {
		return string(decoded), "gbk", nil
	}
	if decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(raw); err == nil && clean(decoded) {
		return string(decoded), "gb18030", nil
	}
	return "", "", blame.NewBlame(blame.ErrInvalidDataFile, "data file is not UTF-8, GBK, or GB18030").
		WithComponent(blame.Configuration)
}

// clean reports whether a decode produced no replacement runes.
func clean(decoded []byte) bool {
	return !strings.ContainsRune(string(decoded), utf8.RuneError)
}

// mapColumns resolves header names to indexes and verifies the required set.
func mapColumns(header []string) (map[string]int, blame.Blame) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, blame.NewBlame(blame.ErrInvalidDataFile,
			fmt.Sprintf("data file is missing required columns: %s", strings.Join(missing, ", "))).
			WithComponent(blame.Configuration)
	}
	return cols, nil
}

func field(fields []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
