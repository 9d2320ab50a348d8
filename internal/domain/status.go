package domain

// Status is a broadcast lifecycle state.
type Status string

// List of broadcast statuses
const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
)

// transitions is the directed lifecycle graph. States without outgoing edges are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusRejected, StatusExpired, StatusCancelled},
	StatusAccepted:  {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusShipped},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {StatusCompleted},
}

var allowedStatuses = [...]Status{
	StatusPending, StatusAccepted, StatusRejected, StatusExpired, StatusCancelled,
	StatusPreparing, StatusShipped, StatusDelivered, StatusCompleted,
}

// Valid checks if the Status is one of the known states.
func (s Status) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Claimed reports whether a broadcast in this status must carry a retailer.
func (s Status) Claimed() bool {
	switch s {
	case StatusPending, StatusExpired, StatusCancelled:
		return false
	default:
		return s.Valid()
	}
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Conditional reports whether from -> to may be applied through a generic
// status update. Leaving pending by claim, rejection or expiry has its own
// store primitive and is excluded here.
func Conditional(from, to Status) bool {
	if !CanTransition(from, to) {
		return false
	}
	if from == StatusPending {
		return to == StatusCancelled
	}
	return true
}

// ReleasesAgent reports whether entering s frees the assigned delivery agent.
func (s Status) ReleasesAgent() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// Predecessor returns the status a broadcast must be in for a generic update
// to move it to next. Cancellation through this path is the retailer's
// policy cancel of an accepted broadcast; a customer cancels from pending.
func Predecessor(next Status) (Status, bool) {
	for from := range transitions {
		if from != StatusPending && Conditional(from, next) {
			return from, true
		}
	}
	return "", false
}
