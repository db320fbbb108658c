package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var AllStatuses = []OrderStatus{
	StatusPending,
	StatusCooking,
	StatusReady,
	StatusCompleted,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCooking, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// forwardMoves lists the steps the administrative action may take.
// Cancellation is handled separately in CanAdvanceTo.
var forwardMoves = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusCooking},
	StatusCooking: {StatusReady, StatusCompleted},
	StatusReady:   {StatusCompleted},
}

// CanAdvanceTo reports whether the administrative progression allows moving
// from s to next. Staying in the same status is always allowed.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if next == StatusCancelled {
		return s != StatusCancelled
	}
	for _, allowed := range forwardMoves[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
