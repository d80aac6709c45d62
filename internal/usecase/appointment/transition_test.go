package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
)

func (f *fixture) transitionUC() *TransitionAppointment {
	dispatcher := audit.NewDispatcher(audit.New(f.db), zap.NewNop())
	return NewTransitionAppointment(f.repo, dispatcher, f.notifier)
}

func (f *fixture) rescheduleUC() *RescheduleAppointment {
	dispatcher := audit.NewDispatcher(audit.New(f.db), zap.NewNop())
	return NewRescheduleAppointment(f.repo, dispatcher, f.notifier, f.locks)
}

func (f *fixture) book(t *testing.T, autoConfirm bool) *models.Appointment {
	t.Helper()
	ap, err := f.createUC(autoConfirm).Execute(context.Background(), validInput(f))
	require.NoError(t, err)
	return ap
}

func TestTransition_PendingToConfirmed(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, false)

	got, err := f.transitionUC().Execute(context.Background(), ap.ID, schedule.StatusConfirmed, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusConfirmed), got.Status)
}

func TestTransition_FinishWithPayment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, true)

	paid := true
	got, err := f.transitionUC().Execute(context.Background(), ap.ID, schedule.StatusFinished, &paid, nil)
	require.NoError(t, err)
	assert.Equal(t, string(schedule.StatusFinished), got.Status)
	assert.True(t, got.IsPaid)
}

func TestTransition_CancelledIsFinal(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, true)

	uc := f.transitionUC()
	_, err := uc.Execute(context.Background(), ap.ID, schedule.StatusCancelled, nil, nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), ap.ID, schedule.StatusConfirmed, nil, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestTransition_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.transitionUC().Execute(context.Background(), 9999, schedule.StatusConfirmed, nil, nil)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestReschedule_MovesAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, true)

	got, err := f.rescheduleUC().Execute(context.Background(), ap.ID, RescheduleAppointmentInput{
		Date:      "2030-06-11",
		StartTime: "15:00",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "2030-06-11", got.Date.String())
	assert.Equal(t, "15:00", got.StartTime)
	assert.Equal(t, "16:00", got.EndTime)
}

func TestReschedule_OwnSlotDoesNotConflict(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, true)

	// Shift by 30 minutes, overlapping the appointment's old interval.
	got, err := f.rescheduleUC().Execute(context.Background(), ap.ID, RescheduleAppointmentInput{
		Date:      ap.Date.String(),
		StartTime: "10:30",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "10:30", got.StartTime)
}

func TestReschedule_ConflictWithOtherAppointment(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, true)

	other := validInput(f)
	other.StartTime = "12:00"
	other.ClientPhone = "5493519999999"
	_, err := f.createUC(true).Execute(context.Background(), other)
	require.NoError(t, err)

	_, err = f.rescheduleUC().Execute(context.Background(), ap.ID, RescheduleAppointmentInput{
		Date:      ap.Date.String(),
		StartTime: "12:30",
	}, nil)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateAndRescheduleRaceForSameSlot(t *testing.T) {
	f := newFixture(t)

	// An appointment on another day, about to be moved into the slot.
	moved := validInput(f)
	moved.Date = "2030-06-20"
	moved.ClientPhone = "5493519999999"
	ap, err := f.createUC(true).Execute(context.Background(), moved)
	require.NoError(t, err)

	createUC := f.createUC(true)
	rescheduleUC := f.rescheduleUC()

	var wg sync.WaitGroup
	var createErr, rescheduleErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, createErr = createUC.Execute(context.Background(), validInput(f))
	}()
	go func() {
		defer wg.Done()
		_, rescheduleErr = rescheduleUC.Execute(context.Background(), ap.ID, RescheduleAppointmentInput{
			Date:      "2030-06-10",
			StartTime: "10:00",
		}, nil)
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range []error{createErr, rescheduleErr} {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, httperr.IsBusiness(err, "time_conflict"))
		}
	}
	assert.Equal(t, 1, succeeded, "create and reschedule must not both take the slot")

	// Both paths must contend on the same lock table.
	assert.Same(t, createUC.locks, rescheduleUC.locks)
}

func TestReschedule_TerminalRejected(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, true)

	_, err := f.transitionUC().Execute(context.Background(), ap.ID, schedule.StatusCancelled, nil, nil)
	require.NoError(t, err)

	_, err = f.rescheduleUC().Execute(context.Background(), ap.ID, RescheduleAppointmentInput{
		Date:      "2030-06-11",
		StartTime: "15:00",
	}, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}
