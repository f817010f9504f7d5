package checkout

// State tracks a single checkout attempt.
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateSubmitting State = "SUBMITTING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}
