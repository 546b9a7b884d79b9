package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhissng/expirywatch/record"
	"github.com/abhissng/expirywatch/report"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

func projRecord(name string, daysLeft int, status record.Status) record.DocumentRecord {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return record.DocumentRecord{
		PersonName:   name,
		DocumentType: "护照",
		StartDate:    base.AddDate(-5, 0, 0),
		ExpiryDate:   base.AddDate(0, 0, daysLeft),
		Remarks:      "研发部",
		DaysLeft:     daysLeft,
		Status:       status,
	}
}

func TestProjectOrdersByUrgency(t *testing.T) {
	rows := report.Project([]record.DocumentRecord{
		projRecord("valid", 200, record.StatusValid),
		projRecord("soon", 7, record.StatusExpiringSoon),
		projRecord("expired", -3, record.StatusExpired),
	}, dateutil.DefaultLayout)

	require.Len(t, rows, 3)
	assert.Equal(t, "expired", rows[0].PersonName)
	assert.Equal(t, "soon", rows[1].PersonName)
	assert.Equal(t, "valid", rows[2].PersonName)
}

func TestProjectFormatsFields(t *testing.T) {
	rows := report.Project([]record.DocumentRecord{
		projRecord("张三", 7, record.StatusExpiringSoon),
	}, dateutil.DefaultLayout)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "张三", row.PersonName)
	assert.Equal(t, "01/06/2020", row.StartDate)
	assert.Equal(t, "08/06/2025", row.ExpiryDate)
	assert.Equal(t, 7, row.DaysLeft)
	assert.Equal(t, "expiring_soon", row.Status)
	assert.Equal(t, "研发部", row.Remarks)
}

func TestProjectMissingStartDateRendersEmpty(t *testing.T) {
	rec := projRecord("张三", 7, record.StatusExpiringSoon)
	rec.StartDate = time.Time{}
	rows := report.Project([]record.DocumentRecord{rec}, dateutil.DefaultLayout)
	assert.Equal(t, "", rows[0].StartDate)
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "document_status_20250601.csv",
		report.Filename("document_status_{date}.csv", date))
	assert.Equal(t, "static.csv", report.Filename("static.csv", date))
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "report.csv")

	rows := report.Project([]record.DocumentRecord{
		projRecord("张三", 7, record.StatusExpiringSoon),
		projRecord("李四", -2, record.StatusExpired),
	}, dateutil.DefaultLayout)

	w := report.NewWriter(nil)
	require.Nil(t, w.Write(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3) // header + 2 rows
	assert.Equal(t, report.Header, got[0])
	assert.Equal(t, "李四", got[1][0]) // expired first
	assert.Equal(t, "expired", got[1][5])
	assert.Equal(t, "张三", got[2][0])
}
