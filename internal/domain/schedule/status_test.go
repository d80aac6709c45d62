package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/romacabello/salon-scheduler/internal/httperr"
)

func TestCanTransition_LiveStatuses(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		for _, to := range []Status{StatusConfirmed, StatusFinished, StatusCancelled, StatusNoShow} {
			assert.NoError(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatusesAreFinal(t *testing.T) {
	for _, from := range []Status{StatusFinished, StatusCancelled, StatusNoShow} {
		err := CanTransition(from, StatusConfirmed)
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s should be final", from)
	}
}

func TestCanTransition_RejectsPendingAndUnknownTargets(t *testing.T) {
	err := CanTransition(StatusConfirmed, StatusPending)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	err = CanTransition(StatusConfirmed, Status("ARCHIVED"))
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestBusyStatuses(t *testing.T) {
	assert.True(t, StatusPending.Busy())
	assert.True(t, StatusConfirmed.Busy())
	assert.True(t, StatusFinished.Busy())
	assert.False(t, StatusCancelled.Busy())
	assert.False(t, StatusNoShow.Busy())
}
