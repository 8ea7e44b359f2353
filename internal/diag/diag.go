// Package diag collects non-fatal ingestion diagnostics produced while
// scanning and validating the image pool, grounded on the "problems" list
// pattern in update_target.go:validateUpdateTargetConfig.
package diag

import "fmt"

// Severity classifies a diagnostic record for display purposes.
type Severity int

const (
	// SeverityDiscarded marks a manifest excluded from the catalog.
	SeverityDiscarded Severity = iota
	// SeverityMultiplicity marks a manifest discarded to satisfy the
	// checkpoint multiplicity invariant, even though it parsed and
	// validated cleanly on its own.
	SeverityMultiplicity
)

// Record is one ingestion diagnostic: a path, the rule that failed, and a
// human-readable message.
type Record struct {
	Path     string
	Rule     string
	Message  string
	Severity Severity
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s: %s", r.Path, r.Rule, r.Message)
}

// Log accumulates Records across a scan + build pass. It is not safe for
// concurrent writes; each scan/build pass owns its own Log.
type Log struct {
	records []Record
}

// Add appends a diagnostic record.
func (l *Log) Add(r Record) {
	l.records = append(l.records, r)
}

// Discarded records a manifest being excluded from the catalog.
func (l *Log) Discarded(path, rule, message string) {
	l.Add(Record{Path: path, Rule: rule, Message: message, Severity: SeverityDiscarded})
}

// MultiplicityViolation records a manifest discarded to satisfy the
// checkpoint multiplicity invariant.
func (l *Log) MultiplicityViolation(path, rule, message string) {
	l.Add(Record{Path: path, Rule: rule, Message: message, Severity: SeverityMultiplicity})
}

// Records returns every diagnostic recorded so far.
func (l *Log) Records() []Record {
	return l.records
}

// Len reports how many diagnostics have been recorded.
func (l *Log) Len() int {
	return len(l.records)
}
