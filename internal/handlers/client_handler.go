package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/phone"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// List pages through the client directory, newest first.
func (h *ClientHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.Model(&models.Client{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Error interno.")
		return
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Error interno.")
		return
	}

	c.JSON(200, gin.H{
		"data":  clients,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// Lookup finds a client by phone so the booking widget can prefill the
// name. A miss is a normal outcome, not an error worth logging.
func (h *ClientHandler) Lookup(c *gin.Context) {
	raw := c.Query("phone")
	normalized := phone.Normalize(raw)
	if normalized == "" {
		httperr.BadRequest(c, "invalid_phone", "Teléfono inválido.")
		return
	}

	var client models.Client
	if err := h.db.Where("phone = ?", normalized).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_lookup_client", "Error interno.")
		return
	}

	c.JSON(200, client)
}
