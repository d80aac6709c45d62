package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/httpresp"
	"github.com/romacabello/salon-scheduler/internal/middleware"
	"github.com/romacabello/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditor *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	DurationMin *int     `json:"duration_min"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

// --------- Handlers ---------

// List returns active services by default; ?include_inactive=true shows
// the whole catalog for the admin panel.
func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{}).Order("id")
	if c.Query("include_inactive") != "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error interno.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	svc := models.Service{
		Name:        req.Name,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}
	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			httperr.BadRequest(c, "invalid_duration", "La duración debe ser positiva.")
			return
		}
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	httpresp.OK(c, svc)
}

// Delete deactivates a service instead of removing the row, so past
// appointments keep their reference.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	svc.Active = false
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
