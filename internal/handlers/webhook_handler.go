package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/domain/schedule"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/notify"
	"github.com/romacabello/salon-scheduler/internal/phone"
	uc "github.com/romacabello/salon-scheduler/internal/usecase/appointment"
)

// confirmationWindow bounds how old a confirmation request can be and
// still accept a reply.
const confirmationWindow = 48 * time.Hour

type WebhookHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	notifier uc.Notifier
	log      *zap.Logger
}

func NewWebhookHandler(db *gorm.DB, auditor *audit.Dispatcher, notifier uc.Notifier, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{db: db, audit: auditor, notifier: notifier, log: log}
}

type whatsappWebhookPayload struct {
	EventType string `json:"event_type"`
	Data      struct {
		From string `json:"from"`
		Body string `json:"body"`
	} `json:"data"`
}

// WhatsApp handles inbound gateway messages. A "1" confirms and a "2"
// cancels the sender's pending appointment; anything else is ignored.
// The gateway retries on non-2xx, so the handler always answers ok.
func (h *WebhookHandler) WhatsApp(c *gin.Context) {
	var payload whatsappWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	reply := strings.TrimSpace(payload.Data.Body)
	if reply != "1" && reply != "2" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	sender := phone.FromWhatsApp(payload.Data.From)
	if sender == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	ap := h.findPendingFor(sender)
	if ap == nil {
		h.log.Info("webhook reply without matching pending appointment",
			zap.String("from", sender), zap.String("reply", reply))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	dateStr := ap.Date.String()
	switch reply {
	case "1":
		ap.Status = string(schedule.StatusConfirmed)
		if err := h.db.Save(ap).Error; err != nil {
			h.log.Error("webhook confirm failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		h.audit.Dispatch(audit.Event{
			Action:   "appointment_confirmed_by_client",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
		h.notifier.SendWhatsApp(ap.ClientPhone,
			notify.ReplyConfirmed(ap.ClientName, dateStr, ap.StartTime))
		h.notifier.SendTelegram(
			notify.AdminClientConfirmed(ap.ClientName, dateStr, ap.StartTime))

	case "2":
		ap.Status = string(schedule.StatusCancelled)
		if err := h.db.Save(ap).Error; err != nil {
			h.log.Error("webhook cancel failed", zap.Uint("appointment_id", ap.ID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		h.audit.Dispatch(audit.Event{
			Action:   "appointment_cancelled_by_client",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
		h.notifier.SendWhatsApp(ap.ClientPhone, notify.ReplyCancelled)
		h.notifier.SendTelegram(
			notify.AdminClientCancelled(ap.ClientName, dateStr, ap.StartTime))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// findPendingFor returns the sender's earliest pending appointment whose
// confirmation request went out within the reply window.
func (h *WebhookHandler) findPendingFor(sender string) *models.Appointment {
	cutoff := time.Now().Add(-confirmationWindow)

	var candidates []models.Appointment
	err := h.db.
		Where("status = ?", string(schedule.StatusPending)).
		Where("confirmation_sent_at IS NOT NULL").
		Where("confirmation_sent_at >= ?", cutoff).
		Order("date, start_time").
		Find(&candidates).Error
	if err != nil {
		h.log.Error("webhook candidate query failed", zap.Error(err))
		return nil
	}

	for i := range candidates {
		if phone.Matches(candidates[i].ClientPhone, sender) {
			return &candidates[i]
		}
	}
	return nil
}
