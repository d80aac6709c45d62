package schedule

import "github.com/romacabello/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusFinished  Status = "FINISHED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// BusyStatuses are the states that occupy their time slot.
var BusyStatuses = []Status{StatusPending, StatusConfirmed, StatusFinished}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusFinished, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusFinished, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) Busy() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusFinished
}

// CanTransition validates a status change against the state machine:
// PENDING/CONFIRMED may move to CONFIRMED, FINISHED, CANCELLED or NO_SHOW;
// FINISHED, CANCELLED and NO_SHOW are final.
func CanTransition(from, to Status) error {
	if !to.Valid() || to == StatusPending {
		return httperr.ErrBusiness("invalid_status")
	}
	if from.Terminal() {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
