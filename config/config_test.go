package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	require.Nil(t, cfg.Validate())

	hour, minute := cfg.DailyAtClock()
	assert.Equal(t, 21, hour)
	assert.Equal(t, 0, minute)
}

func TestValidateRejectsEmptyServers(t *testing.T) {
	cfg := config.Default()
	cfg.SMTPServers = nil
	b := cfg.Validate()
	require.NotNil(t, b)
	assert.Equal(t, blame.ErrInvalidConfig, b.FetchErrCode())
	assert.True(t, b.IsFatal())
}

func TestValidateRejectsEmptyRecipients(t *testing.T) {
	cfg := config.Default()
	cfg.Recipients = nil
	require.NotNil(t, cfg.Validate())
}

func TestValidateRejectsBadRecipient(t *testing.T) {
	cfg := config.Default()
	cfg.Recipients = []string{"not-an-email"}
	require.NotNil(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveAttempts(t *testing.T) {
	cfg := config.Default()
	cfg.MaxAttemptsPerServer = 0
	require.NotNil(t, cfg.Validate())
}

func TestValidateRejectsNegativeOffset(t *testing.T) {
	cfg := config.Default()
	cfg.Reminder.Offsets = []int{30, -1}
	require.NotNil(t, cfg.Validate())
}

func TestValidateRejectsMissingTableRows(t *testing.T) {
	cfg := config.Default()
	cfg.MailTemplate.BodyHTML = "<html><body>no rows here</body></html>"
	b := cfg.Validate()
	require.NotNil(t, b)
	assert.Contains(t, b.FetchMessage(), "{table_rows}")
}

func TestValidateRejectsBadDailyAt(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule.DailyAt = "25:99"
	require.NotNil(t, cfg.Validate())
}

func TestWriteTemplateThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "expirywatch.yaml")
	require.Nil(t, config.WriteTemplate(path))

	cfg, b := config.Load(path)
	require.Nil(t, b)
	require.Len(t, cfg.SMTPServers, 1)
	assert.Equal(t, "primary", cfg.SMTPServers[0].Name)
	assert.Equal(t, 3, cfg.MaxAttemptsPerServer)
	assert.Equal(t, []int{60, 30, 10, 7, 1}, cfg.Reminder.Offsets)
	assert.Equal(t, "21:00", cfg.Schedule.DailyAt)
	assert.True(t, cfg.MailTemplate.ContainsTableRows())
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expirywatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep: me\n"), 0o600))

	b := config.WriteTemplate(path)
	require.NotNil(t, b)
	assert.Equal(t, blame.ErrTemplateUnwritable, b.FetchErrCode())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep: me\n", string(raw))
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_file: data.csv\n"), 0o600))

	_, b := config.Load(path)
	require.NotNil(t, b)
	assert.Equal(t, blame.ErrInvalidConfig, b.FetchErrCode())
}

func TestLoadMissingFile(t *testing.T) {
	_, b := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NotNil(t, b)
}
