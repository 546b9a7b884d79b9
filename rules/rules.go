// Package rules selects the day's reminder set. Selection is a pure filter
// and a deterministic sort: the same records and reference date always yield
// the same batch, in the same order.
package rules

import (
	"sort"

	"github.com/abhissng/expirywatch/record"
)

// ReminderBatch is the set of records eligible for notification in the
// current run, ordered by ascending days left and then person name so the
// rendered mail is stable. Recomputed per invocation, never persisted.
type ReminderBatch struct {
	Records []record.DocumentRecord
}

// IsEmpty reports whether there is anything to send.
func (b ReminderBatch) IsEmpty() bool {
	return len(b.Records) == 0
}

// Count returns the number of records in the batch.
func (b ReminderBatch) Count() int {
	return len(b.Records)
}

// Select filters the records flagged for reminding and orders them
// deterministically. It has no side effects and is safe to call repeatedly.
func Select(records []record.DocumentRecord) ReminderBatch {
	eligible := make([]record.DocumentRecord, 0, len(records))
	for _, rec := range records {
		if rec.NeedsReminder {
			eligible = append(eligible, rec)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].DaysLeft != eligible[j].DaysLeft {
			return eligible[i].DaysLeft < eligible[j].DaysLeft
		}
		return eligible[i].PersonName < eligible[j].PersonName
	})

	return ReminderBatch{Records: eligible}
}

// Summary aggregates a run's record set for logging and the mail subject.
type Summary struct {
	Total        int
	Expired      int
	ExpiringSoon int
	Valid        int
	Reminders    int
}

// Summarize counts the status distribution of the full record set and the
// number of reminders due.
func Summarize(records []record.DocumentRecord) Summary {
	s := Summary{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case record.StatusExpired:
			s.Expired++
		case record.StatusExpiringSoon:
			s.ExpiringSoon++
		case record.StatusValid:
			s.Valid++
		}
		if rec.NeedsReminder {
			s.Reminders++
		}
	}
	return s
}
