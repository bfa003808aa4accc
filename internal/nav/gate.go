package nav

// GateDecision says whether an effect may be applied immediately or must be
// held behind an explicit yes/no.
type GateDecision int

const (
	GatePass GateDecision = iota
	GateHold
)

// Guard is the confirmation gate: a pure function of the destructive flag.
// Toggles are never destructive by definition, so they always pass.
func Guard(e Effect) GateDecision {
	if e.Destructive {
		return GateHold
	}
	return GatePass
}
