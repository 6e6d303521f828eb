package domain

// Status is the lifecycle state of a report and its damage projection.
// Transitions run strictly forward: received, in_process, resolved.
type Status string

const (
	StatusReceived  Status = "received"
	StatusInProcess Status = "in_process"
	StatusResolved  Status = "resolved"
)

var statusOrder = map[Status]int{
	StatusReceived:  0,
	StatusInProcess: 1,
	StatusResolved:  2,
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Next returns the adjacent forward status. ok is false when s is resolved
// or unknown.
func (s Status) Next() (next Status, ok bool) {
	switch s {
	case StatusReceived:
		return StatusInProcess, true
	case StatusInProcess:
		return StatusResolved, true
	default:
		return "", false
	}
}

// CanAdvanceTo reports whether target is the adjacent forward status of s.
// No skipping and no backward moves.
func (s Status) CanAdvanceTo(target Status) bool {
	next, ok := s.Next()
	return ok && next == target
}

// Before reports whether s precedes other in the lifecycle ordering.
// Unknown statuses precede nothing and follow nothing.
func (s Status) Before(other Status) bool {
	sr, ok := statusOrder[s]
	if !ok {
		return false
	}
	or, ok := statusOrder[other]
	if !ok {
		return false
	}
	return sr < or
}
