package dwhetl

// State is the progress of a load run.
type State int

const (
	// Idle means no run has started.
	Idle State = iota
	// StagingInProgress means staging statements are being executed.
	StagingInProgress
	// StagingDone means every staging statement was committed.
	StagingDone
	// PopulatingInProgress means populate statements are being executed.
	PopulatingInProgress
	// Done means every statement of the run was committed.
	Done
	// Failed means a statement could not be executed or committed.
	Failed
)

var stateNames = map[State]string{
	Idle:                 "idle",
	StagingInProgress:    "staging",
	StagingDone:          "staging done",
	PopulatingInProgress: "populating",
	Done:                 "done",
	Failed:               "failed",
}

// String returns a human readable name of the state.
func (s State) String() string {
	if res, ok := stateNames[s]; ok {
		return res
	}
	return "unknown"
}
