package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/httpresp"
	"github.com/romacabello/salon-scheduler/internal/middleware"
	"github.com/romacabello/salon-scheduler/internal/models"
	uc "github.com/romacabello/salon-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db *gorm.DB

	create     *uc.CreateAppointment
	list       *uc.ListAppointments
	transition *uc.TransitionAppointment
	update     *uc.UpdateAppointment
	reschedule *uc.RescheduleAppointment
	delete     *uc.DeleteAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *uc.CreateAppointment,
	list *uc.ListAppointments,
	transition *uc.TransitionAppointment,
	update *uc.UpdateAppointment,
	reschedule *uc.RescheduleAppointment,
	del *uc.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		create:     create,
		list:       list,
		transition: transition,
		update:     update,
		reschedule: reschedule,
		delete:     del,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	StaffID     *uint  `json:"staff_id"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Note        string `json:"note"`
	IsPaid      bool   `json:"is_paid"`
}

type UpdateAppointmentRequest struct {
	Status *string `json:"status"`
	IsPaid *bool   `json:"is_paid"`
	Note   *string `json:"note"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// --------- Handlers ---------

// List returns appointments for a day (?date=) or a range (?from=&to=).
func (h *AppointmentHandler) List(c *gin.Context) {
	var date, from, to *models.Date

	parse := func(name string) (*models.Date, bool) {
		raw := c.Query(name)
		if raw == "" {
			return nil, true
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha '"+name+"' inválida.")
			return nil, false
		}
		return &d, true
	}

	var ok bool
	if date, ok = parse("date"); !ok {
		return
	}
	if from, ok = parse("from"); !ok {
		return
	}
	if to, ok = parse("to"); !ok {
		return
	}

	appointments, err := h.list.Execute(c.Request.Context(), date, from, to)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error interno.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var ap models.Appointment
	if err := h.db.Preload("Service").First(&ap, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "appointment_not_found", "Turno no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Error interno.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), uc.CreateAppointmentInput{
		Date:        req.Date,
		StartTime:   req.StartTime,
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Note:        req.Note,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		httperr.FromBusiness(c, err, "No se pudo crear el turno.")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.doTransition(c, schedule.StatusConfirmed, nil)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.doTransition(c, schedule.StatusCancelled, nil)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.doTransition(c, schedule.StatusNoShow, nil)
}

// Finish accepts ?is_paid=true|false to settle payment in the same call.
func (h *AppointmentHandler) Finish(c *gin.Context) {
	var isPaid *bool
	if raw := c.Query("is_paid"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "is_paid inválido.")
			return
		}
		isPaid = &v
	}
	h.doTransition(c, schedule.StatusFinished, isPaid)
}

func (h *AppointmentHandler) doTransition(c *gin.Context, to schedule.Status, isPaid *bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), uint(id), to, isPaid, middleware.AdminID(c))
	if err != nil {
		httperr.FromBusiness(c, err, "No se pudo actualizar el turno.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), uint(id), uc.UpdateAppointmentInput{
		Status: req.Status,
		IsPaid: req.IsPaid,
		Note:   req.Note,
	}, middleware.AdminID(c))
	if err != nil {
		httperr.FromBusiness(c, err, "No se pudo actualizar el turno.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), uint(id), uc.RescheduleAppointmentInput{
		Date:      req.Date,
		StartTime: req.StartTime,
	}, middleware.AdminID(c))
	if err != nil {
		httperr.FromBusiness(c, err, "No se pudo reprogramar el turno.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), uint(id), middleware.AdminID(c)); err != nil {
		httperr.FromBusiness(c, err, "No se pudo eliminar el turno.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
