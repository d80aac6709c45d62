package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/httpresp"
	"github.com/romacabello/salon-scheduler/internal/middleware"
	"github.com/romacabello/salon-scheduler/internal/models"
)

type AvailabilityHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAvailabilityHandler(db *gorm.DB, auditor *audit.Dispatcher) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type AvailabilityRangeRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type PutAvailabilityRequest struct {
	Enabled     *bool                      `json:"enabled"`
	SlotSizeMin int                        `json:"slot_size_min" binding:"required"`
	Ranges      []AvailabilityRangeRequest `json:"ranges"`
	StaffID     *uint                      `json:"staff_id"`
}

// --------- Handlers ---------

// List returns the configured days in a date range. Dates without a row
// are simply absent: closed is the default.
func (h *AvailabilityHandler) List(c *gin.Context) {
	q := h.db.Model(&models.AvailabilityDay{}).
		Preload("Ranges", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("date")

	if from := c.Query("from"); from != "" {
		d, err := models.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha 'from' inválida.")
			return
		}
		q = q.Where("date >= ?", d)
	}
	if to := c.Query("to"); to != "" {
		d, err := models.ParseDate(to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha 'to' inválida.")
			return
		}
		q = q.Where("date <= ?", d)
	}
	if staffID := c.Query("staff_id"); staffID != "" {
		q = q.Where("staff_id = ?", staffID)
	}

	var days []models.AvailabilityDay
	if err := q.Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", "Error interno.")
		return
	}

	httpresp.List(c, days)
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	var day models.AvailabilityDay
	q := h.db.Preload("Ranges", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("date = ?", date)
	if staffID := c.Query("staff_id"); staffID != "" {
		q = q.Where("staff_id = ?", staffID)
	} else {
		q = q.Where("staff_id IS NULL")
	}

	if err := q.First(&day).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "availability_not_found", "El día no está configurado.")
			return
		}
		httperr.Internal(c, "failed_to_get_availability", "Error interno.")
		return
	}

	httpresp.OK(c, day)
}

// Put overwrites a day's configuration wholesale. The previous ranges
// are discarded; sending the same payload twice leaves the same state.
func (h *AvailabilityHandler) Put(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	var req PutAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	intervals := make([]schedule.Interval, 0, len(req.Ranges))
	ranges := make([]models.AvailabilityRange, 0, len(req.Ranges))
	for _, r := range req.Ranges {
		iv, err := schedule.ClockInterval(r.StartTime, r.EndTime)
		if err != nil {
			httperr.FromBusiness(c, err, "Rango horario inválido.")
			return
		}
		intervals = append(intervals, iv)
		ranges = append(ranges, models.AvailabilityRange{
			StartTime: schedule.FormatClock(iv.Start),
			EndTime:   schedule.FormatClock(iv.End),
		})
	}

	if err := schedule.ValidateDay(req.SlotSizeMin, intervals); err != nil {
		httperr.FromBusiness(c, err, "Configuración de disponibilidad inválida.")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	var day models.AvailabilityDay
	err = h.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("date = ?", date)
		if req.StaffID != nil {
			q = q.Where("staff_id = ?", *req.StaffID)
		} else {
			q = q.Where("staff_id IS NULL")
		}

		switch err := q.First(&day).Error; err {
		case nil:
			if err := tx.Where("availability_day_id = ?", day.ID).
				Delete(&models.AvailabilityRange{}).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			day = models.AvailabilityDay{Date: date, StaffID: req.StaffID}
		default:
			return err
		}

		day.Enabled = enabled
		day.SlotSizeMin = req.SlotSizeMin
		day.Ranges = ranges

		return tx.Save(&day).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_availability", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "availability_updated",
		Entity:   "availability_day",
		EntityID: &day.ID,
		Metadata: gin.H{"date": date.String()},
	})

	httpresp.OK(c, day)
}

// Delete removes a day's configuration, closing the date again.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	var day models.AvailabilityDay
	q := h.db.Where("date = ?", date)
	if staffID := c.Query("staff_id"); staffID != "" {
		q = q.Where("staff_id = ?", staffID)
	} else {
		q = q.Where("staff_id IS NULL")
	}
	if err := q.First(&day).Error; err != nil {
		httperr.NotFound(c, "availability_not_found", "El día no está configurado.")
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("availability_day_id = ?", day.ID).
			Delete(&models.AvailabilityRange{}).Error; err != nil {
			return err
		}
		return tx.Delete(&day).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_availability", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "availability_deleted",
		Entity:   "availability_day",
		EntityID: &day.ID,
		Metadata: gin.H{"date": date.String()},
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
