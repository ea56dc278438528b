package catalog

// Step is a statement scheduled for execution.
type Step struct {
	// Seq is the 1-based position of the step in a run.
	Seq int

	// List is the list the statement comes from.
	List ListID

	// Index is the 0-based position of the statement in its list
	// as declared in the catalog.
	Index int

	Statement
}

// Forward schedules the list in its declared order.
func Forward(l StatementList) []Step {
	res := make([]Step, 0, len(l.Statements))
	for i, st := range l.Statements {
		res = append(res, Step{List: l.ID, Index: i, Statement: st})
	}
	return res
}

// Reversed schedules the list in reverse of its declared order.
func Reversed(l StatementList) []Step {
	res := make([]Step, 0, len(l.Statements))
	for i := len(l.Statements) - 1; i >= 0; i-- {
		res = append(res, Step{List: l.ID, Index: i, Statement: l.Statements[i]})
	}
	return res
}

// Sequence joins phases of steps and numbers them from 1.
func Sequence(phases ...[]Step) []Step {
	var res []Step
	for _, phase := range phases {
		for _, st := range phase {
			st.Seq = len(res) + 1
			res = append(res, st)
		}
	}
	return res
}
