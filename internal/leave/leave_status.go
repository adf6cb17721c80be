package leave

import "strings"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(v string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(v)))
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return s, true
	}
	return "", false
}

// allowedTransitions lists the decisions an approver may take from each
// state. Pending is only ever an initial state.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:  {StatusRejected, StatusCancelled},
	StatusRejected:  {StatusApproved, StatusCancelled},
	StatusCancelled: {StatusApproved, StatusRejected},
}

func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
