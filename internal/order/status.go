package order

var statusRank = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusDispatched: 2,
	StatusDelivered:  3,
}

// canTransition reports whether a single forward step or a cancellation is
// legal. Cancellation is never reachable from delivered.
func canTransition(from, to Status) bool {
	if from == StatusCancelled || from == StatusDelivered {
		return false
	}
	if to == StatusCancelled {
		return from == StatusPending || from == StatusConfirmed || from == StatusDispatched
	}

	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// AggregateStatus derives the parent order's status from its vendor orders.
// The parent never adopts a single vendor's progress: it reflects the least
// advanced non-cancelled vendor order, so "delivered" means every vendor
// delivered. An order where every vendor cancelled is cancelled.
func AggregateStatus(vendorStatuses []Status) Status {
	if len(vendorStatuses) == 0 {
		return StatusPending
	}

	allCancelled := true
	minRank := statusRank[StatusDelivered]
	for _, st := range vendorStatuses {
		if st == StatusCancelled {
			continue
		}
		allCancelled = false
		if r := statusRank[st]; r < minRank {
			minRank = r
		}
	}
	if allCancelled {
		return StatusCancelled
	}

	for st, r := range statusRank {
		if r == minRank {
			return st
		}
	}
	return StatusPending
}
