package model

// CaseStatus classifies the outcome of evaluating a case
type CaseStatus string

const (
	StatusPassed    CaseStatus = "passed"
	StatusFailed    CaseStatus = "failed"
	StatusUnchecked CaseStatus = "unchecked"
	StatusError     CaseStatus = "error"
)

// CaseResult holds the scan results of a case in both directions
type CaseResult struct {
	Name      string     `json:"name"`
	Input     []int      `json:"input"`
	Expected  *int       `json:"expected,omitempty"`
	Forward   int        `json:"forward"`
	Reverse   int        `json:"reverse"`
	Symmetric bool       `json:"symmetric"`
	Status    CaseStatus `json:"status"`
	Error     string     `json:"error,omitempty"`
	Steps     int        `json:"steps"`
	Cached    bool       `json:"cached,omitempty"`
}

// Report aggregates the results of one evaluation run
type Report struct {
	Results   []CaseResult `json:"results"`
	Total     int          `json:"total"`
	Passed    int          `json:"passed"`
	Failed    int          `json:"failed"`
	Unchecked int          `json:"unchecked"`
	Errors    int          `json:"errors"`
	Largest   int          `json:"largest"`
}

// NewReport tallies the given results
func NewReport(results []CaseResult) *Report {
	report := &Report{Results: results, Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPassed:
			report.Passed++
		case StatusFailed:
			report.Failed++
		case StatusUnchecked:
			report.Unchecked++
		case StatusError:
			report.Errors++
		}
		if r.Forward > report.Largest {
			report.Largest = r.Forward
		}
	}
	return report
}

// OK reports whether no case failed or errored
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Errors == 0
}
