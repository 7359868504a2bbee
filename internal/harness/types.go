package harness

// TraceEvent records the service state after one step.
type TraceEvent struct {
	Step     int    `json:"step"`
	Action   string `json:"action"`
	At       int64  `json:"at"`
	Counter  int    `json:"counter"`
	Recorded bool   `json:"recorded,omitempty"` // sample/shake stored a shake
	Visible  bool   `json:"history_visible,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`

	// Counter is the final counter value.
	Counter int `json:"counter"`

	// History is the final rendered history.
	History []string `json:"history"`

	// Issues counts malformed tokens skipped while projecting history.
	Issues int `json:"issues,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		History: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
