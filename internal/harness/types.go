package harness

import "github.com/roach88/flix/internal/journal"

// StepOutcome records what one step did.
type StepOutcome struct {
	Index  int    `json:"index"`
	Action string `json:"action"`
	Desc   string `json:"desc"`
	// Code is the rentalerr code the step failed with, or "" on success.
	Code string `json:"code,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every step matched its expectations.
	Pass bool `json:"pass"`

	// Steps holds one outcome per executed step.
	Steps []StepOutcome `json:"steps"`

	// Trace is the journal written during the run.
	Trace []journal.Entry `json:"trace"`

	// Inventory is the final catalog listing.
	Inventory string `json:"inventory"`

	// Errors describes each mismatch. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepOutcome{},
		Trace:  []journal.Entry{},
		Errors: []string{},
	}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
