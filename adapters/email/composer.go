package email

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhissng/expirywatch/rules"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

// Composer renders a reminder batch into a single HTML message. Rendering is
// a pure string operation: a malformed template degrades to literal
// placeholders, never to an error, since a rough-looking mail that arrives
// beats a perfect one that doesn't.
type Composer struct {
	templates  Templates
	dateLayout string
}

// NewComposer creates a Composer using the configured templates and the
// date layout used for human-readable dates.
func NewComposer(templates Templates, dateLayout string) *Composer {
	if dateLayout == "" {
		dateLayout = dateutil.DefaultLayout
	}
	return &Composer{templates: templates, dateLayout: dateLayout}
}

// Compose builds the subject and HTML body for the batch. The second return
// value is false when the batch is empty: no mail is needed and the delivery
// engine must not be invoked.
func (c *Composer) Compose(batch rules.ReminderBatch, today time.Time) (*Message, bool) {
	if batch.IsEmpty() {
		return nil, false
	}

	todayStr := dateutil.FormatDate(dateutil.Truncate(today), c.dateLayout)
	count := strconv.Itoa(batch.Count())

	rows := make([]string, 0, batch.Count())
	for _, rec := range batch.Records {
		rows = append(rows, applyTemplate(c.templates.TableRowHTML, map[string]string{
			"person_name":   rec.PersonName,
			"document_type": rec.DocumentType,
			"start_date":    dateutil.FormatDate(rec.StartDate, c.dateLayout),
			"expiry_date":   dateutil.FormatDate(rec.ExpiryDate, c.dateLayout),
			"days_left":     daysLeftDisplay(rec.DaysLeft),
			"remarks":       rec.Remarks,
			"color":         urgencyColor(rec.DaysLeft),
		}))
	}

	subject := applyTemplate(c.templates.Subject, map[string]string{
		"count":      count,
		"today_date": todayStr,
	})
	body := applyTemplate(c.templates.BodyHTML, map[string]string{
		"table_rows": strings.Join(rows, "\n"),
		"count":      count,
		"today_date": todayStr,
	})

	return &Message{Subject: subject, HTMLBody: body}, true
}

// daysLeftDisplay formats the remaining validity for the mail table.
func daysLeftDisplay(daysLeft int) string {
	switch {
	case daysLeft < 0:
		return fmt.Sprintf("expired %d days ago", -daysLeft)
	case daysLeft == 0:
		return "expires today"
	case daysLeft == 1:
		return "expires tomorrow"
	default:
		return fmt.Sprintf("expires in %d days", daysLeft)
	}
}

// urgencyColor maps days left to the row highlight color.
func urgencyColor(daysLeft int) string {
	switch {
	case daysLeft <= 1: // expired or due within a day
		return "#dc3545"
	case daysLeft <= 7:
		return "#fd7e14"
	case daysLeft <= 30:
		return "#ffc107"
	default:
		return "#28a745"
	}
}
