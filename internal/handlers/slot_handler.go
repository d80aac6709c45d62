package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/romacabello/salon-scheduler/internal/httperr"
	"github.com/romacabello/salon-scheduler/internal/httpresp"
	uc "github.com/romacabello/salon-scheduler/internal/usecase/appointment"
)

type SlotHandler struct {
	getSlots *uc.GetSlots
}

func NewSlotHandler(getSlots *uc.GetSlots) *SlotHandler {
	return &SlotHandler{getSlots: getSlots}
}

// List answers GET /slots?date=YYYY-MM-DD&service_id=N[&staff_id=N].
func (h *SlotHandler) List(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "invalid_date", "El parámetro 'date' es obligatorio.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "El parámetro 'service_id' es obligatorio.")
		return
	}

	var staffID *uint
	if raw := c.Query("staff_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "staff_id inválido.")
			return
		}
		id := uint(v)
		staffID = &id
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), dateStr, uint(serviceID), staffID)
	if err != nil {
		httperr.FromBusiness(c, err, "No se pudieron calcular los horarios.")
		return
	}

	httpresp.List(c, slots)
}
