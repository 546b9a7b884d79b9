package blame

// ErrorCode is a short machine-readable identifier for an error condition.
type ErrorCode string

// String returns the error code as a string
func (e ErrorCode) String() string {
	return string(e)
}

// Component classifies an error into the error taxonomy of the pipeline.
// Row-level and composition errors are recoverable; configuration errors and
// exhausted transport errors abort the run.
type Component string

const (
	// RowValidation covers bad or missing fields and invalid dates in a CSV row.
	// The row is skipped and logged; the pipeline continues.
	RowValidation Component = "row-validation"

	// Configuration covers missing or malformed required configuration.
	// Fatal: the pipeline aborts before any send attempt.
	Configuration Component = "configuration"

	// Transport covers SMTP failures. Recovered locally by failover and
	// retry; fatal only after all servers and attempts are exhausted.
	Transport Component = "transport"

	// Composition covers template rendering issues. Degrades gracefully.
	Composition Component = "composition"

	// Library marks errors raised by the error framework itself.
	Library Component = "library"
)

// Error codes shared across packages.
const (
	ErrInvalidDate        ErrorCode = "invalid-date"
	ErrInvalidDataFile    ErrorCode = "invalid-data-file"
	ErrInvalidConfig      ErrorCode = "invalid-configuration"
	ErrAllServersFailed   ErrorCode = "all-servers-failed"
	ErrStateUnavailable   ErrorCode = "state-unavailable"
	ErrReportWriteFailed  ErrorCode = "report-write-failed"
	ErrSampleWriteFailed  ErrorCode = "sample-write-failed"
	ErrTemplateUnwritable ErrorCode = "template-unwritable"
)
