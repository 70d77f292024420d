package diagnostics

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes pushed to /diag listeners.
const (
	CodeRegistered   = "ELEMENT.REGISTERED"
	CodeRemoved      = "ELEMENT.REMOVED"
	CodeRejected     = "ELEMENT.REJECTED"
	CodeBadControl   = "CONTROL.MALFORMED"
	CodeUnknownCmd   = "CONTROL.UNKNOWN"
	CodeSinkFailure  = "SINK.WRITE_FAILED"
	CodeMotionPaused = "MOTION.REDUCED"
)

type Diagnostic struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Summary  string         `json:"summary"`
	Detail   string         `json:"detail,omitempty"`
	Evidence map[string]any `json:"evidence,omitempty"`
}

func New(sev Severity, code, summary string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Summary: summary}
}

// With attaches a piece of evidence and returns d for chaining.
func (d Diagnostic) With(key string, v any) Diagnostic {
	ev := make(map[string]any, len(d.Evidence)+1)
	for k, x := range d.Evidence {
		ev[k] = x
	}
	ev[key] = v
	d.Evidence = ev
	return d
}
