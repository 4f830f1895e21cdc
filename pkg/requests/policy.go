package requests

import "github.com/bookswap/bookswap/pkg/models"

// RerequestPolicy decides whether a user may request a book again after an
// earlier request of theirs for the same book.
type RerequestPolicy int

const (
	// RerequestNever allows a single request per book and requester, whatever
	// became of it.
	RerequestNever RerequestPolicy = iota
	// RerequestAfterRejection allows a new request once the previous ones were
	// rejected.
	RerequestAfterRejection
)

// blockingStatuses returns the statuses of an earlier request that prevent a
// new one. Nil means any status.
func (p RerequestPolicy) blockingStatuses() []string {
	if p == RerequestAfterRejection {
		return []string{models.RequestStatusIdle, models.RequestStatusPending, models.RequestStatusAccepted}
	}
	return nil
}

func (p RerequestPolicy) String() string {
	if p == RerequestAfterRejection {
		return "after_rejection"
	}
	return "never"
}
