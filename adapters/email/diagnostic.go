package email

import (
	"fmt"
	"time"
)

// DiagnosticMessage builds the fixed test mail used to verify that the SMTP
// configuration and failover chain work before trusting them with reminders.
func DiagnosticMessage(now time.Time) *Message {
	return &Message{
		Subject: "expirywatch - configuration test",
		HTMLBody: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>expirywatch test</title></head>
<body>
<h2>Document expiry watch - test mail</h2>
<p>If you are reading this, the mail configuration works.</p>
<p><strong>Sent at:</strong> %s</p>
<p>This mail was sent automatically; do not reply.</p>
</body>
</html>`, now.Format("2006-01-02 15:04:05")),
	}
}
