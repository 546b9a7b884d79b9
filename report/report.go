// Package report projects the validated record set into the status report
// shape and writes it out as CSV.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abhissng/expirywatch/record"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

// ReportRow is one line of the status report: the record plus its dates
// rendered human-readable.
type ReportRow struct {
	PersonName   string
	DocumentType string
	StartDate    string
	ExpiryDate   string
	DaysLeft     int
	Status       string
	Remarks      string
}

// Header is the column order of the report CSV.
var Header = []string{
	"person_name", "document_type", "start_date", "expiry_date",
	"days_left", "status", "remarks",
}

// Project maps every validated record into a ReportRow, most urgent first:
// expired, then expiring soon, then valid, each group by ascending days
// left. Reminder eligibility plays no part; the report covers everything.
func Project(records []record.DocumentRecord, dateLayout string) []ReportRow {
	if dateLayout == "" {
		dateLayout = dateutil.DefaultLayout
	}

	ordered := make([]record.DocumentRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Status != ordered[j].Status {
			return ordered[i].Status < ordered[j].Status
		}
		if ordered[i].DaysLeft != ordered[j].DaysLeft {
			return ordered[i].DaysLeft < ordered[j].DaysLeft
		}
		return ordered[i].PersonName < ordered[j].PersonName
	})

	rows := make([]ReportRow, 0, len(ordered))
	for _, rec := range ordered {
		rows = append(rows, ReportRow{
			PersonName:   rec.PersonName,
			DocumentType: rec.DocumentType,
			StartDate:    dateutil.FormatDate(rec.StartDate, dateLayout),
			ExpiryDate:   dateutil.FormatDate(rec.ExpiryDate, dateLayout),
			DaysLeft:     rec.DaysLeft,
			Status:       rec.Status.String(),
			Remarks:      rec.Remarks,
		})
	}
	return rows
}

// Filename expands the {date} placeholder in the configured report filename
// template. The date is rendered compact (YYYYMMDD) to keep filenames sane.
func Filename(template string, date time.Time) string {
	return strings.ReplaceAll(template, "{date}", date.Format("20060102"))
}

// fields renders a row to CSV string fields in Header order.
func (r ReportRow) fields() []string {
	return []string{
		r.PersonName, r.DocumentType, r.StartDate, r.ExpiryDate,
		strconv.Itoa(r.DaysLeft), r.Status, r.Remarks,
	}
}
