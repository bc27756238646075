package domain

// transitions is the booking state machine:
// pending -> accepted | rejected; accepted -> no_show | completed.
// rejected, no_show and completed are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusNoShow, StatusCompleted},
}

// CanTransition reports whether the state machine allows moving from one
// status to another. Repeating the current status is not a valid transition.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given one
func AllowedTransitions(from BookingStatus) []BookingStatus {
	return transitions[from]
}

// ValidStatus reports whether the string is a known booking status
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}
