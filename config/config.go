// Package config defines the typed application configuration, its defaults,
// and structural validation.
package config

import (
	"time"

	"github.com/abhissng/expirywatch/adapters/email"
	"github.com/abhissng/expirywatch/adapters/validator"
	adapterviper "github.com/abhissng/expirywatch/adapters/viper"
	"github.com/abhissng/expirywatch/blame"
	"github.com/abhissng/expirywatch/utils/dateutil"
)

// ReminderConfig controls which records get a reminder on a given day.
type ReminderConfig struct {
	// Offsets are the exact days-left values that trigger a reminder.
	Offsets []int `mapstructure:"offsets" yaml:"offsets" validate:"required,min=1,dive,min=0"`
}

// ReportConfig controls the status report output.
type ReportConfig struct {
	OutputFilename    string `mapstructure:"output_filename" yaml:"output_filename" validate:"required"`
	ExpiringThreshold int    `mapstructure:"expiring_threshold" yaml:"expiring_threshold" validate:"min=0"`
}

// ScheduleConfig controls the daily boundary used for catch-up runs and where
// the last-success timestamp is kept.
type ScheduleConfig struct {
	DailyAt   string `mapstructure:"daily_at" yaml:"daily_at" validate:"required"`
	StateFile string `mapstructure:"state_file" yaml:"state_file" validate:"required"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Config is the whole application configuration.
type Config struct {
	DataFile             string               `mapstructure:"data_file" yaml:"data_file" validate:"required"`
	DateFormat           string               `mapstructure:"date_format" yaml:"date_format" validate:"required"`
	SMTPServers          []email.ServerConfig `mapstructure:"smtp_servers" yaml:"smtp_servers" validate:"required,min=1,dive"`
	Recipients           []string             `mapstructure:"recipients" yaml:"recipients" validate:"required,min=1,dive,email"`
	MaxAttemptsPerServer int                  `mapstructure:"max_attempts_per_server" yaml:"max_attempts_per_server" validate:"required,min=1"`
	Reminder             ReminderConfig       `mapstructure:"reminder" yaml:"reminder"`
	Report               ReportConfig         `mapstructure:"report" yaml:"report"`
	MailTemplate         email.Templates      `mapstructure:"mail_template" yaml:"mail_template"`
	Schedule             ScheduleConfig       `mapstructure:"schedule" yaml:"schedule"`
	Log                  LogConfig            `mapstructure:"log" yaml:"log"`
}

// Default returns the configuration template values, complete enough to run
// once real SMTP credentials are filled in.
func Default() Config {
	return Config{
		DataFile:   "data/documents.csv",
		DateFormat: dateutil.DefaultLayout,
		SMTPServers: []email.ServerConfig{
			{
				Name:       "primary",
				Host:       "smtp.example.com",
				Port:       465,
				Username:   "bot@example.com",
				Password:   "change-me",
				SenderName: "证件到期提醒",
				Security:   email.SecuritySSL,
			},
		},
		Recipients:           []string{"hr@example.com"},
		MaxAttemptsPerServer: 3,
		Reminder: ReminderConfig{
			Offsets: []int{60, 30, 10, 7, 1},
		},
		Report: ReportConfig{
			OutputFilename:    "document_status_{date}.csv",
			ExpiringThreshold: 30,
		},
		MailTemplate: email.Templates{
			Subject: "证件到期提醒 - {count} 条记录需要关注 ({today_date})",
			BodyHTML: `<html><body>
<h2>证件到期提醒</h2>
<p>截至 {today_date}，以下 {count} 条证件记录需要办理：</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>姓名</th><th>证件类型</th><th>办理日期</th><th>到期日期</th><th>剩余天数</th><th>备注</th></tr>
{table_rows}
</table>
<p>请及时处理。</p>
</body></html>`,
			TableRowHTML: `<tr style="color:{color}"><td>{person_name}</td><td>{document_type}</td><td>{start_date}</td><td>{expiry_date}</td><td>{days_left}</td><td>{remarks}</td></tr>`,
		},
		Schedule: ScheduleConfig{
			DailyAt:   "21:00",
			StateFile: "state/last_success_iso.txt",
		},
		Log: LogConfig{
			Level: "info",
			File:  "logs/expirywatch.log",
		},
	}
}

// Load reads, unmarshals, and validates the configuration file at path.
func Load(path string) (*Config, blame.Blame) {
	v := adapterviper.NewViper(path)
	if err := v.InitialiseViper(); err != nil {
		return nil, blame.NewBlame(blame.ErrInvalidConfig, "cannot read configuration file").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}

	var cfg Config
	if err := adapterviper.UnmarshalConfig(&cfg); err != nil {
		return nil, blame.NewBlame(blame.ErrInvalidConfig, "cannot decode configuration file").
			WithComponent(blame.Configuration).
			WithField("path", path).
			WithCause(err)
	}
	cfg.applyFallbacks()

	if b := cfg.Validate(); b != nil {
		return nil, b.WithField("path", path)
	}
	return &cfg, nil
}

// applyFallbacks fills optional settings that may be absent from a hand-edited
// file. Required settings are never defaulted; Validate catches those.
func (c *Config) applyFallbacks() {
	if c.DateFormat == "" {
		c.DateFormat = dateutil.DefaultLayout
	}
	if c.Schedule.DailyAt == "" {
		c.Schedule.DailyAt = "21:00"
	}
	if c.Schedule.StateFile == "" {
		c.Schedule.StateFile = "state/last_success_iso.txt"
	}
	if c.Report.OutputFilename == "" {
		c.Report.OutputFilename = "document_status_{date}.csv"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the configuration structurally and semantically. Any
// failure is fatal; the run must abort before side effects.
func (c *Config) Validate() blame.Blame {
	if errorMap := validator.NewValidator().ValidateStruct(c); errorMap != nil {
		return blame.NewBlame(blame.ErrInvalidConfig,
			"configuration is invalid: "+validator.Describe(errorMap)).
			WithComponent(blame.Configuration)
	}

	if !c.MailTemplate.ContainsTableRows() {
		return blame.NewBlame(blame.ErrInvalidConfig,
			"mail_template.body_html must contain the {table_rows} placeholder").
			WithComponent(blame.Configuration)
	}

	if _, err := time.Parse("15:04", c.Schedule.DailyAt); err != nil {
		return blame.NewBlame(blame.ErrInvalidConfig,
			"schedule.daily_at must be a HH:MM clock time").
			WithComponent(blame.Configuration).
			WithField("daily_at", c.Schedule.DailyAt).
			WithCause(err)
	}

	if _, err := time.Parse(c.DateFormat,
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC).Format(c.DateFormat)); err != nil {
		return blame.NewBlame(blame.ErrInvalidConfig,
			"date_format is not a usable Go date layout").
			WithComponent(blame.Configuration).
			WithField("date_format", c.DateFormat).
			WithCause(err)
	}

	return nil
}

// DailyAtClock returns the configured daily boundary as hour and minute.
// Validate must have passed first.
func (c *Config) DailyAtClock() (hour, minute int) {
	t, err := time.Parse("15:04", c.Schedule.DailyAt)
	if err != nil {
		return 21, 0
	}
	return t.Hour(), t.Minute()
}
