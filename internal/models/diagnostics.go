package models

// Diagnostic types carried on parse errors and warnings.
const (
	DiagFormat      = "format"
	DiagValidation  = "validation"
	DiagIncomplete  = "incomplete"
	DiagDataQuality = "data-quality"
)

// Diagnostic is a non-fatal problem attributed to a source line. Errors mean
// the record was dropped; warnings mean it was used but something is suspect.
// The pipeline accumulates diagnostics instead of raising them.
type Diagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
	RawText string `json:"rawText"`
	Type    string `json:"type"`
}

// DiagnosticList accumulates errors and warnings for one stage or one run.
type DiagnosticList struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// AddError records a dropped-record diagnostic.
func (d *DiagnosticList) AddError(line int, diagType, message, raw string) {
	d.Errors = append(d.Errors, Diagnostic{Line: line, Type: diagType, Message: message, RawText: raw})
}

// AddWarning records a used-but-suspicious diagnostic.
func (d *DiagnosticList) AddWarning(line int, diagType, message, raw string) {
	d.Warnings = append(d.Warnings, Diagnostic{Line: line, Type: diagType, Message: message, RawText: raw})
}

// Merge appends another list's diagnostics in order.
func (d *DiagnosticList) Merge(other DiagnosticList) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}
