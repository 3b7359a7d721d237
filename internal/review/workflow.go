package review

// Operation is a reviewer-triggered lifecycle action.
type Operation string

const (
	OpApprove         Operation = "approve"
	OpReject          Operation = "reject"
	OpAssign          Operation = "assign"
	OpRequestRevision Operation = "request_revision"
	OpResubmit        Operation = "resubmit"
)

// transitions is the single source of truth for the approval lifecycle.
// Terminal statuses (approved, rejected) have no outgoing edges.
var transitions = map[Status]map[Operation]Status{
	StatusPending: {
		OpAssign:  StatusUnderReview,
		OpApprove: StatusApproved,
		OpReject:  StatusRejected,
	},
	StatusUnderReview: {
		OpApprove:         StatusApproved,
		OpReject:          StatusRejected,
		OpRequestRevision: StatusNeedsRevision,
	},
	StatusNeedsRevision: {
		OpResubmit: StatusPending,
	},
}

// Next returns the status reached by applying op from the given status, or an
// InvalidTransitionError if the edge does not exist.
func Next(from Status, op Operation) (Status, error) {
	if to, ok := transitions[from][op]; ok {
		return to, nil
	}
	return "", &InvalidTransitionError{Status: from, Op: op}
}

// CanTransition reports whether op is legal from the given status.
func CanTransition(from Status, op Operation) bool {
	_, ok := transitions[from][op]
	return ok
}

// noteCommentType maps a lifecycle operation to the comment type used when a
// reviewer note accompanies the transition. Assign and resubmit carry no note.
func noteCommentType(op Operation) (CommentType, bool) {
	switch op {
	case OpApprove:
		return CommentApproval, true
	case OpReject:
		return CommentRejection, true
	case OpRequestRevision:
		return CommentRevisionRequest, true
	}
	return "", false
}
