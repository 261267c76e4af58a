package entities

import "time"

// ValidationOutcome is the result of validating one added record.
type ValidationOutcome struct {
	Position   int // 1-based, in extraction order
	Record     string
	Descriptor EntryDescriptor // zero when the record could not be parsed
	Err        error
	Duration   time.Duration
}

// Succeeded reports whether the entry passed validation.
func (o ValidationOutcome) Succeeded() bool {
	return o.Err == nil
}

// ValidationReport is the ordered list of outcomes of a run.
type ValidationReport struct {
	Outcomes []ValidationOutcome
}

// NewValidationReport creates an empty report with room for n outcomes.
func NewValidationReport(n int) *ValidationReport {
	return &ValidationReport{Outcomes: make([]ValidationOutcome, 0, n)}
}

// Add appends an outcome.
func (r *ValidationReport) Add(outcome ValidationOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Empty reports whether no entry was processed.
func (r *ValidationReport) Empty() bool {
	return len(r.Outcomes) == 0
}

// Clean reports whether every outcome succeeded. An empty report is clean.
func (r *ValidationReport) Clean() bool {
	return len(r.Failures()) == 0
}

// Failures returns the failed outcomes in order.
func (r *ValidationReport) Failures() []ValidationOutcome {
	var failures []ValidationOutcome
	for _, outcome := range r.Outcomes {
		if !outcome.Succeeded() {
			failures = append(failures, outcome)
		}
	}
	return failures
}
