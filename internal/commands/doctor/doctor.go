// Package doctor diagnoses the pieces the curlbaby shell depends on: the
// configuration file, raw mode on the controlling terminal and the history
// backend.
package doctor

import "context"

// Status is the outcome of a single finding.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name in JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one line of a report.
type Finding struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Report collects the findings of one check.
type Report struct {
	Name     string    `json:"name"`
	Findings []Finding `json:"findings"`
}

func (r *Report) pass(label, detail string) { r.record(StatusPass, label, detail) }
func (r *Report) warn(label, detail string) { r.record(StatusWarn, label, detail) }
func (r *Report) fail(label, detail string) { r.record(StatusFail, label, detail) }

func (r *Report) record(status Status, label, detail string) {
	r.Findings = append(r.Findings, Finding{Label: label, Status: status, Detail: detail})
}

// Worst returns the most severe status in the report. An empty report passes.
func (r Report) Worst() Status {
	worst := StatusPass
	for _, f := range r.Findings {
		worst = max(worst, f.Status)
	}
	return worst
}

// Check produces a report about one part of the installation.
type Check interface {
	Name() string
	Run(ctx context.Context) Report
}

// Run executes checks in order. Checks not yet started when ctx ends are
// skipped.
func Run(ctx context.Context, checks ...Check) []Report {
	reports := make([]Report, 0, len(checks))
	for _, check := range checks {
		if ctx.Err() != nil {
			break
		}
		reports = append(reports, check.Run(ctx))
	}
	return reports
}

// Tally counts findings by status.
type Tally struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Healthy reports whether nothing failed.
func (t Tally) Healthy() bool {
	return t.Failed == 0
}

// Count tallies the findings across reports.
func Count(reports []Report) Tally {
	var t Tally
	for _, r := range reports {
		for _, f := range r.Findings {
			switch f.Status {
			case StatusPass:
				t.Passed++
			case StatusWarn:
				t.Warned++
			case StatusFail:
				t.Failed++
			}
		}
	}
	return t
}
