// Package reminder runs the background job that asks clients to confirm
// pending appointments over WhatsApp.
package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/notify"
	"github.com/romacabello/salon-scheduler/internal/timezone"
)

// Notification lead windows. Bookings made well in advance get their
// confirmation request the day before; short-notice bookings get it
// shortly before the appointment.
const (
	advanceLead    = 24 * time.Hour
	advanceWindow  = 25 * time.Hour
	lastCallWindow = 75 * time.Minute
	horizonDays    = 3
)

type Sender interface {
	SendWhatsApp(to, body string)
}

type Worker struct {
	db       *gorm.DB
	sender   Sender
	log      *zap.Logger
	tz       string
	interval time.Duration
}

func NewWorker(db *gorm.DB, sender Sender, log *zap.Logger, tz string, interval time.Duration) *Worker {
	return &Worker{
		db:       db,
		sender:   sender,
		log:      log,
		tz:       tz,
		interval: interval,
	}
}

// Run loops until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("reminder worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(timezone.NowIn(w.tz))
		}
	}
}

// RunOnce scans for pending appointments that are due a confirmation
// request and sends one per appointment, stamping confirmation_sent_at
// so replies can be matched and requests are never repeated.
func (w *Worker) RunOnce(now time.Time) {
	today := models.NewDate(now.Year(), now.Month(), now.Day())
	horizon := today.AddDays(horizonDays)

	var pending []models.Appointment
	err := w.db.Preload("Service").
		Where("status = ?", string(schedule.StatusPending)).
		Where("confirmation_sent_at IS NULL").
		Where("date >= ? AND date <= ?", today, horizon).
		Order("date, start_time").
		Find(&pending).Error
	if err != nil {
		w.log.Error("reminder scan failed", zap.Error(err))
		return
	}

	for i := range pending {
		ap := &pending[i]
		if !w.due(ap, now) {
			continue
		}

		w.sender.SendWhatsApp(ap.ClientPhone, notify.ConfirmationRequest(
			ap.ClientName,
			ap.Date.String(),
			ap.StartTime,
			ap.Service.Name,
		))

		sentAt := now
		ap.ConfirmationSentAt = &sentAt
		if err := w.db.Model(ap).Update("confirmation_sent_at", sentAt).Error; err != nil {
			w.log.Error("failed to stamp confirmation request",
				zap.Uint("appointment_id", ap.ID), zap.Error(err))
			continue
		}

		w.log.Info("confirmation request sent",
			zap.Uint("appointment_id", ap.ID),
			zap.String("date", ap.Date.String()),
			zap.String("start_time", ap.StartTime))
	}
}

// due decides whether the confirmation request should go out now.
// Appointments booked with at least a day of lead are pinged inside the
// 25-hour window; short-notice ones inside the 75-minute window.
func (w *Worker) due(ap *models.Appointment, now time.Time) bool {
	startMin, err := schedule.ParseClock(ap.StartTime)
	if err != nil {
		return false
	}

	start := time.Date(
		ap.Date.Year(), ap.Date.Month(), ap.Date.Day(),
		startMin/60, startMin%60, 0, 0, now.Location(),
	)

	until := start.Sub(now)
	if until <= 0 {
		return false
	}

	if start.Sub(ap.CreatedAt) >= advanceLead {
		return until <= advanceWindow
	}
	return until <= lastCallWindow
}
