package record

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhissng/expirywatch/adapters/log"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

// BuildParams fixes the evaluation context for a run. Offsets and threshold
// come from configuration; ReferenceDate is the run's notion of "today".
type BuildParams struct {
	ReferenceDate time.Time
	DateLayout    string
	Threshold     int
	Offsets       []int
}

// Builder turns raw rows into DocumentRecords. Row-level failures are
// demoted to skips and warnings; they never escalate past this boundary.
type Builder struct {
	params BuildParams
	log    *log.Log
}

// NewBuilder creates a Builder for one run.
func NewBuilder(params BuildParams, logger *log.Log) *Builder {
	if params.DateLayout == "" {
		params.DateLayout = dateutil.DefaultLayout
	}
	params.ReferenceDate = dateutil.Truncate(params.ReferenceDate)
	return &Builder{params: params, log: logger}
}

// Build validates a single row and computes the derived fields. It returns
// either a record or a skip, never both and never an error.
func (b *Builder) Build(row Row) (*DocumentRecord, *SkippedRow) {
	name := strings.TrimSpace(row.PersonName)
	docType := strings.TrimSpace(row.DocumentType)
	remarks := strings.TrimSpace(row.Remarks)

	if name == "" {
		return nil, b.skip(row, "person_name is empty")
	}
	if docType == "" {
		return nil, b.skip(row, "document_type is empty")
	}

	expiryRes := dateutil.ParseDate(row.ExpiryDate, b.params.DateLayout)
	if expiryRes.IsError() {
		return nil, b.skip(row, fmt.Sprintf("expiry_date %q: %s", row.ExpiryDate, expiryRes.Error().FetchMessage()))
	}
	expiry := *expiryRes.ToValue()

	// start_date is optional and validated independently. An invalid value
	// does not invalidate the record; it is dropped with a warning.
	var start time.Time
	if strings.TrimSpace(row.StartDate) != "" {
		startRes := dateutil.ParseDate(row.StartDate, b.params.DateLayout)
		if startRes.IsError() {
			if b.log != nil {
				b.log.Warn("start date unparseable, keeping record without it",
					log.Int("row", row.Index),
					log.String("raw", row.StartDate),
				)
			}
		} else {
			start = *startRes.ToValue()
			if !start.Before(expiry) {
				return nil, b.skip(row, fmt.Sprintf("start_date %q is not before expiry_date %q", row.StartDate, row.ExpiryDate))
			}
		}
	}

	daysLeft := dateutil.DaysBetween(b.params.ReferenceDate, expiry)

	rec := &DocumentRecord{
		PersonName:    name,
		DocumentType:  docType,
		StartDate:     start,
		ExpiryDate:    expiry,
		Remarks:       remarks,
		DaysLeft:      daysLeft,
		Status:        statusFor(daysLeft, b.params.Threshold),
		NeedsReminder: eligibleFor(daysLeft, b.params.Offsets, remarks),
	}
	return rec, nil
}

// BuildAll processes every row, logging a warning per skip. Skips are
// returned so callers can report their count.
func (b *Builder) BuildAll(rows []Row) ([]DocumentRecord, []SkippedRow) {
	records := make([]DocumentRecord, 0, len(rows))
	var skipped []SkippedRow

	for _, row := range rows {
		rec, skip := b.Build(row)
		if skip != nil {
			skipped = append(skipped, *skip)
			if b.log != nil {
				b.log.Warn("row skipped",
					log.Int("row", skip.Index),
					log.String("reason", skip.Reason),
				)
			}
			continue
		}
		records = append(records, *rec)
	}
	return records, skipped
}

func (b *Builder) skip(row Row, reason string) *SkippedRow {
	return &SkippedRow{
		Index:  row.Index,
		Raw:    fmt.Sprintf("%s,%s,%s,%s,%s", row.PersonName, row.DocumentType, row.StartDate, row.ExpiryDate, row.Remarks),
		Reason: reason,
	}
}

// statusFor is exhaustive and mutually exclusive over daysLeft:
// Expired iff daysLeft < 0, ExpiringSoon iff 0 <= daysLeft <= threshold,
// Valid otherwise.
func statusFor(daysLeft, threshold int) Status {
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= threshold:
		return StatusExpiringSoon
	default:
		return StatusValid
	}
}

// eligibleFor implements the reminder rule: a record is reminded only on the
// exact configured offsets, never once expired, and never when the remark
// says the renewal is already handled.
func eligibleFor(daysLeft int, offsets []int, remarks string) bool {
	if daysLeft < 0 {
		return false
	}
	if remarks == RemarkProcessed {
		return false
	}
	return slices.Contains(offsets, daysLeft)
}
