package leave

import "errors"

var (
	// ErrLeaveRequestNotFound covers both a missing record and an ownership
	// mismatch: lookups filter by id AND owner, so the two cases are
	// deliberately indistinguishable to the caller.
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
)
