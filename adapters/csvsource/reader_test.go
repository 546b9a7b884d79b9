package csvsource_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/abhissng/expirywatch/adapters/csvsource"
	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documents.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

const sampleCSV = `person_name,document_type,start_date,expiry_date,remarks
张三,护照,01/01/2020,01/01/2026,研发部
李四,签证,,15/08/2025,已办理
`

func TestReadUTF8(t *testing.T) {
	r := csvsource.NewReader(nil)
	rows, b := r.Read(writeFile(t, []byte(sampleCSV)))
	require.Nil(t, b)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, "张三", rows[0].PersonName)
	assert.Equal(t, "护照", rows[0].DocumentType)
	assert.Equal(t, "01/01/2020", rows[0].StartDate)
	assert.Equal(t, "01/01/2026", rows[0].ExpiryDate)

	assert.Equal(t, 3, rows[1].Index)
	assert.Equal(t, "", rows[1].StartDate)
	assert.Equal(t, "已办理", rows[1].Remarks)
}

func TestReadGBKFallback(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(sampleCSV))
	require.NoError(t, err)

	r := csvsource.NewReader(nil)
	rows, b := r.Read(writeFile(t, encoded))
	require.Nil(t, b)
	require.Len(t, rows, 2)
	assert.Equal(t, "张三", rows[0].PersonName)
	assert.Equal(t, "已办理", rows[1].Remarks)
}

func TestReadGB18030Fallback(t *testing.T) {
	// ḿ (U+1E3F) needs a GB18030 four-byte sequence and has no GBK mapping,
	// so this file must reach the GB18030 decoder, not be mangled by GBK.
	content := "person_name,document_type,expiry_date\nḿ名字,护照,01/01/2026\n"
	encoded, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)

	r := csvsource.NewReader(nil)
	rows, b := r.Read(writeFile(t, encoded))
	require.Nil(t, b)
	require.Len(t, rows, 1)
	assert.Equal(t, "ḿ名字", rows[0].PersonName)
	assert.NotContains(t, rows[0].PersonName, "�")
}

func TestReadUndecodableBytes(t *testing.T) {
	// 0xFF is invalid in UTF-8, GBK, and GB18030.
	raw := append([]byte("person_name,document_type,expiry_date\n"), 0xFF, 0xFF, 0xFF)

	r := csvsource.NewReader(nil)
	_, b := r.Read(writeFile(t, raw))
	require.NotNil(t, b)
	assert.Equal(t, blame.ErrInvalidDataFile, b.FetchErrCode())
}

func TestReadMissingFile(t *testing.T) {
	r := csvsource.NewReader(nil)
	_, b := r.Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.NotNil(t, b)
	assert.Equal(t, blame.ErrInvalidDataFile, b.FetchErrCode())
	assert.True(t, b.IsFatal())
}

func TestReadMissingRequiredColumns(t *testing.T) {
	r := csvsource.NewReader(nil)
	_, b := r.Read(writeFile(t, []byte("person_name,remarks\n张三,ok\n")))
	require.NotNil(t, b)
	assert.Contains(t, b.FetchMessage(), "document_type")
	assert.Contains(t, b.FetchMessage(), "expiry_date")
}

func TestReadEmptyFile(t *testing.T) {
	r := csvsource.NewReader(nil)
	_, b := r.Read(writeFile(t, nil))
	require.NotNil(t, b)
}

func TestReadToleratesRaggedRows(t *testing.T) {
	content := "person_name,document_type,expiry_date\n张三,护照\n李四,签证,01/01/2026\n"
	r := csvsource.NewReader(nil)
	rows, b := r.Read(writeFile(t, []byte(content)))
	require.Nil(t, b)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].ExpiryDate) // short row, skipped downstream
	assert.Equal(t, "01/01/2026", rows[1].ExpiryDate)
}

func TestWriteSampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sample.csv")
	ref := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.Nil(t, csvsource.WriteSample(path, ref, dateutil.DefaultLayout))

	rows, b := csvsource.NewReader(nil).Read(path)
	require.Nil(t, b)
	assert.Len(t, rows, 5)
	assert.Equal(t, "张三", rows[0].PersonName)
}
