package calculation

import "fmt"

// AuditLog is the ordered decision log threaded through a calculation.
// Every default, fallback, and credit decision lands here so a result can
// be audited without re-running the engine. A fresh log is built per call;
// nothing is shared between calculations.
type AuditLog struct {
	notes []string
}

// NewAuditLog creates an empty audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Notef appends a formatted note in decision order.
func (l *AuditLog) Notef(format string, args ...any) {
	l.notes = append(l.notes, fmt.Sprintf(format, args...))
}

// Notes returns the accumulated notes in the order they were recorded.
func (l *AuditLog) Notes() []string {
	return l.notes
}
