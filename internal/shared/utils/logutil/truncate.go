// Package logutil keeps untrusted payloads short in log lines.
package logutil

// TruncateForLog cuts s to maxLen bytes and appends "..." when it was longer.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
