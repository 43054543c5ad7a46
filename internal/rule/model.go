package rule

// Status represents the outcome of a lint run or a single rule.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Outcome is what a rule returns: the linter host's [passed, message] pair.
// Err carries the typed cause of a failure and is never serialized.
type Outcome struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
	Err     error  `json:"-"`
}

// Pass returns a passing Outcome with no message.
func Pass() Outcome { return Outcome{Passed: true} }

// Fail returns a failing Outcome whose message is err's text.
func Fail(err error) Outcome {
	return Outcome{Passed: false, Message: err.Error(), Err: err}
}

// Result is the result of a single rule against a single commit.
type Result struct {
	Rule    string  `json:"rule"`
	Level   Level   `json:"level"`
	Status  Status  `json:"status"`
	Outcome Outcome `json:"outcome"`
}

// Report summarises every rule run against one commit.
// Matches <report-dir>/last-run.json entries.
type Report struct {
	Commit  string   `json:"commit,omitempty"` // SHA when linting history
	Header  string   `json:"header"`
	Status  Status   `json:"status"`
	Results []Result `json:"results"`
}

// Valid reports whether no error-level rule failed.
func (r Report) Valid() bool { return r.Status != StatusFail }

// LastRun is the summary written after linting one or more commits.
type LastRun struct {
	Status  Status   `json:"status"` // "pass" or "fail"
	Reports []Report `json:"reports"`
}
