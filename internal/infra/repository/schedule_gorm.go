package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/phone"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetActiveService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ScheduleGormRepository) GetDayConfig(
	ctx context.Context,
	date models.Date,
	staffID *uint,
) (schedule.DayConfig, error) {

	q := r.db.WithContext(ctx).
		Preload("Ranges", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("date = ?", date)
	q = staffEq(q, staffID)

	var day models.AvailabilityDay
	if err := q.First(&day).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return schedule.DayConfig{}, nil
		}
		return schedule.DayConfig{}, err
	}

	cfg := schedule.DayConfig{
		Configured:  true,
		Enabled:     day.Enabled,
		SlotSizeMin: day.SlotSizeMin,
	}
	for _, rg := range day.Ranges {
		iv, err := schedule.ClockInterval(rg.StartTime, rg.EndTime)
		if err != nil {
			return schedule.DayConfig{}, err
		}
		cfg.Ranges = append(cfg.Ranges, iv)
	}
	return cfg, nil
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBlockIntervals(
	ctx context.Context,
	date models.Date,
	staffID *uint,
) ([]schedule.Interval, error) {
	return listBlockIntervals(r.db.WithContext(ctx), date, staffID)
}

func listBlockIntervals(
	db *gorm.DB,
	date models.Date,
	staffID *uint,
) ([]schedule.Interval, error) {

	q := db.
		Where("start_date <= ? AND end_date >= ?", date, date)
	if staffID != nil {
		q = q.Where("staff_id = ? OR staff_id IS NULL", *staffID)
	} else {
		q = q.Where("staff_id IS NULL")
	}

	var blocks []models.Block
	if err := q.Find(&blocks).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(blocks))
	for _, b := range blocks {
		iv, err := schedule.ClockInterval(b.StartTime, b.EndTime)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBusyIntervals(
	ctx context.Context,
	date models.Date,
	staffID *uint,
	excludeID uint,
) ([]schedule.Interval, error) {
	return listBusyIntervals(r.db.WithContext(ctx), date, staffID, excludeID)
}

func listBusyIntervals(
	db *gorm.DB,
	date models.Date,
	staffID *uint,
	excludeID uint,
) ([]schedule.Interval, error) {

	q := db.Model(&models.Appointment{}).
		Select("start_time", "end_time").
		Where("date = ? AND status IN ?", date, schedule.BusyStatuses).
		Order("start_time ASC")
	q = staffEq(q, staffID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(aps))
	for _, ap := range aps {
		iv, err := schedule.ClockInterval(ap.StartTime, ap.EndTime)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// CreateAppointment inserts a booking after re-checking occupancy inside
// the same transaction, so a slot observed as free cannot be taken twice.
func (r *ScheduleGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoConflict(tx, ap, 0); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})
}

// RescheduleAppointment saves a moved booking, re-checking occupancy on
// the target date while ignoring the appointment's own old interval.
func (r *ScheduleGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoConflict(tx, ap, ap.ID); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})
}

// assertNoConflict re-runs the occupancy check the slot generator applies:
// the appointment's interval must not touch a busy appointment or an
// active block window on its date.
func assertNoConflict(tx *gorm.DB, ap *models.Appointment, excludeID uint) error {
	want, err := schedule.ClockInterval(ap.StartTime, ap.EndTime)
	if err != nil {
		return err
	}

	busy, err := listBusyIntervals(tx, ap.Date, ap.StaffID, excludeID)
	if err != nil {
		return err
	}

	blocked, err := listBlockIntervals(tx, ap.Date, ap.StaffID)
	if err != nil {
		return err
	}

	for _, iv := range append(busy, blocked...) {
		if want.Overlaps(iv) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ScheduleGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ScheduleGormRepository) ListAppointments(
	ctx context.Context,
	from, to *models.Date,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Order("date ASC, start_time ASC")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Client directory
// --------------------------------------------------

// UpsertClientByPhone finds or creates a client keyed by normalized
// phone, refreshing the stored name on repeat bookings.
func (r *ScheduleGormRepository) UpsertClientByPhone(
	ctx context.Context,
	name string,
	rawPhone string,
) (*models.Client, error) {

	normalized := phone.Normalize(rawPhone)

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", normalized).
		First(&client).Error

	if err == nil {
		if name != "" && client.Name != name {
			client.Name = name
			if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
				return nil, err
			}
		}
		return &client, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	client = models.Client{
		Name:  name,
		Phone: normalized,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func staffEq(q *gorm.DB, staffID *uint) *gorm.DB {
	if staffID != nil {
		return q.Where("staff_id = ?", *staffID)
	}
	return q.Where("staff_id IS NULL")
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
