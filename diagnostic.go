package patentdoc

// DiagnosticKind classifies a recovered parsing irregularity.
type DiagnosticKind string

// Diagnostic kinds reported while parsing.
const (
	// DiagFieldMissing: an expected attribute or text is absent on an
	// otherwise recognized tag. The field is omitted or set to null.
	DiagFieldMissing DiagnosticKind = "field_missing"

	// DiagUnknownSection: a section marker names a section with no
	// dedicated handler. The section value is set to null.
	DiagUnknownSection DiagnosticKind = "unknown_section"
)

// Diagnostic describes a condition the parser recovered from.
// Diagnostics are never returned as errors.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Tag     string // short description of the offending tag, if any
}

// DiagnosticFunc receives diagnostics as they are produced.
type DiagnosticFunc func(Diagnostic)
