package email

import "strings"

// Message is a composed reminder mail, ready for delivery.
type Message struct {
	Subject  string
	HTMLBody string
}

// Templates holds the configured template fragments. Placeholders use the
// {name} form; body_html must contain {table_rows}.
type Templates struct {
	Subject      string `mapstructure:"subject" yaml:"subject"`
	BodyHTML     string `mapstructure:"body_html" yaml:"body_html"`
	TableRowHTML string `mapstructure:"table_row_html" yaml:"table_row_html"`
}

// ContainsTableRows reports whether the body template has the {table_rows}
// placeholder. Without it every rendered mail would be an empty shell, so
// configuration validation treats its absence as fatal.
func (t Templates) ContainsTableRows() bool {
	return strings.Contains(t.BodyHTML, "{table_rows}")
}

// applyTemplate replaces each {key} with its value. Placeholders without a
// value are left literal; rendering must not fail on a malformed template.
func applyTemplate(input string, data map[string]string) string {
	for k, v := range data {
		input = strings.ReplaceAll(input, "{"+k+"}", v)
	}
	return input
}
