package verifier

import "fmt"

type Kind string

const (
	Pay           Kind = "pay"
	CashOut       Kind = "cash-out"
	SendPayouts   Kind = "send-payouts"
	QueueRules    Kind = "queue-rules"
	LaunchProject Kind = "launch-project"
	DeployToken   Kind = "deploy-token"
	DeployRevnet  Kind = "deploy-revnet"
	DeploySuckers Kind = "deploy-suckers"
)

type Severity string

const (
	Critical Severity = "critical"
	Warning  Severity = "warning"
)

// Params holds raw call arguments keyed by field name. Values may be strings,
// integers, *big.Int, common.Address or chain id lists.
type Params map[string]any

type Doubt struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

type Result struct {
	IsValid        bool              `json:"isValid"`
	Doubts         []Doubt           `json:"doubts"`
	Warnings       []string          `json:"warnings"`
	Corrections    []Correction      `json:"corrections,omitempty"`
	VerifiedParams map[string]string `json:"verifiedParams"`
}

func newResult() *Result {
	return &Result{
		Doubts:         make([]Doubt, 0),
		Warnings:       make([]string, 0),
		VerifiedParams: make(map[string]string),
	}
}

func (r *Result) critical(field, format string, args ...any) {
	r.Doubts = append(r.Doubts, Doubt{
		Severity: Critical,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Result) warn(field, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Doubts = append(r.Doubts, Doubt{
		Severity: Warning,
		Field:    field,
		Message:  msg,
	})
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %s", field, msg))
}

// HasCritical reports whether any doubt blocks the operation.
func (r *Result) HasCritical() bool {
	for _, d := range r.Doubts {
		if d.Severity == Critical {
			return true
		}
	}
	return false
}

// Criticals returns only the blocking doubts.
func (r *Result) Criticals() []Doubt {
	out := make([]Doubt, 0)
	for _, d := range r.Doubts {
		if d.Severity == Critical {
			out = append(out, d)
		}
	}
	return out
}

func (r *Result) finish() *Result {
	r.IsValid = !r.HasCritical()
	return r
}
