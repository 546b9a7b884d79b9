// Package record defines the typed entity derived from each data-file row
// and the computation of its per-run derived fields.
package record

import (
	"time"
)

// Remark sentinel values recognized in the data file. They arrive verbatim
// from the upstream spreadsheet, which is maintained in Chinese.
const (
	// RemarkProcessed marks a document whose renewal is already handled;
	// reminders are suppressed regardless of days left.
	RemarkProcessed = "已办理"
	// RemarkInProgress marks a renewal in flight; reminders stay active.
	RemarkInProgress = "办理中"
)

// Status classifies a document by its remaining validity.
type Status int

const (
	// StatusExpired means the expiry date has passed (days left < 0).
	StatusExpired Status = iota
	// StatusExpiringSoon means days left is within the configured threshold.
	StatusExpiringSoon
	// StatusValid means the document is comfortably within validity.
	StatusValid
)

// String implements fmt.Stringer. The tokens are what the report emits.
func (s Status) String() string {
	switch s {
	case StatusExpired:
		return "expired"
	case StatusExpiringSoon:
		return "expiring_soon"
	case StatusValid:
		return "valid"
	}
	return "unknown"
}

// Row is a raw data-file row before validation. Index is the 1-based line
// number in the source file (the header is line 1), kept for diagnostics.
type Row struct {
	Index        int
	PersonName   string
	DocumentType string
	StartDate    string
	ExpiryDate   string
	Remarks      string
}

// DocumentRecord is the validated entity plus its derived fields. Derived
// fields are computed once per reference date and never mutated afterwards;
// nothing here remembers whether a reminder was already sent.
type DocumentRecord struct {
	PersonName   string
	DocumentType string
	StartDate    time.Time // zero when absent or unparseable
	ExpiryDate   time.Time
	Remarks      string

	// Derived, fixed at build time for the run's reference date.
	DaysLeft      int
	Status        Status
	NeedsReminder bool
}

// SkippedRow records a row excluded from all downstream processing, with
// enough context to log a useful warning.
type SkippedRow struct {
	Index  int
	Raw    string
	Reason string
}
