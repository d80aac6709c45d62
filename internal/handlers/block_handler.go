package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/httpresp"
	"github.com/romacabello/salon-scheduler/internal/middleware"
	"github.com/romacabello/salon-scheduler/internal/models"
)

type BlockHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBlockHandler(db *gorm.DB, auditor *audit.Dispatcher) *BlockHandler {
	return &BlockHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type CreateBlockRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
	StaffID   *uint  `json:"staff_id"`
}

// --------- Handlers ---------

// List returns blocks, optionally only those touching a date range.
func (h *BlockHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Block{}).Order("start_date, start_time")

	if from := c.Query("from"); from != "" {
		d, err := models.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha 'from' inválida.")
			return
		}
		q = q.Where("end_date >= ?", d)
	}
	if to := c.Query("to"); to != "" {
		d, err := models.ParseDate(to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha 'to' inválida.")
			return
		}
		q = q.Where("start_date <= ?", d)
	}

	var blocks []models.Block
	if err := q.Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Error interno.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockHandler) Create(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha de inicio inválida.")
		return
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha de fin inválida.")
		return
	}

	if err := schedule.ValidateBlock(startDate, endDate, req.StartTime, req.EndTime); err != nil {
		httperr.FromBusiness(c, err, "Bloqueo inválido.")
		return
	}

	block := models.Block{
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		StaffID:   req.StaffID,
	}
	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Error interno.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "block_created",
		Entity:   "block",
		EntityID: &block.ID,
		Metadata: gin.H{"start_date": block.StartDate.String(), "end_date": block.EndDate.String()},
	})

	httpresp.Created(c, block)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.Delete(&models.Block{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_block", "Error interno.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "Bloqueo no encontrado.")
		return
	}

	blockID := uint(id)
	h.audit.Dispatch(audit.Event{
		ActorID:  middleware.AdminID(c),
		Action:   "block_deleted",
		Entity:   "block",
		EntityID: &blockID,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
