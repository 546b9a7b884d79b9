package csvsource

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/record"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

// WriteSample writes a starter data file with records spread across the
// expired, expiring, and valid ranges so a fresh install has something to
// chew on.
func WriteSample(path string, refDate time.Time, dateLayout string) blame.Blame {
	if dateLayout == "" {
		dateLayout = dateutil.DefaultLayout
	}
	refDate = dateutil.Truncate(refDate)

	ds := func(days int) string {
		return refDate.AddDate(0, 0, days).Format(dateLayout)
	}

	rows := [][]string{
		{"person_name", "document_type", "start_date", "expiry_date", "remarks"},
		{"张三", "身份证", ds(-3650), ds(365), "研发部"},
		{"李四", "护照", ds(-1825), ds(30), "市场部"},
		{"王五", "签证", ds(-2190), ds(7), record.RemarkInProgress},
		{"赵六", "工作许可证", ds(-365), ds(-5), "技术部"},
		{"钱七", "健康证", ds(-300), ds(60), record.RemarkProcessed},
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return blame.NewBlame(blame.ErrSampleWriteFailed, "cannot create sample directory").
				WithComponent(blame.Configuration).
				WithField("path", path).
				WithCause(err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return blame.NewBlame(blame.ErrSampleWriteFailed, "cannot create sample file").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return blame.NewBlame(blame.ErrSampleWriteFailed, "cannot write sample rows").
			WithCause(err)
	}
	return nil
}
