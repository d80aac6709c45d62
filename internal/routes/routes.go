package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/config"
	"github.com/romacabello/salon-scheduler/internal/handlers"
	infraRepo "github.com/romacabello/salon-scheduler/internal/infra/repository"
	"github.com/romacabello/salon-scheduler/internal/middleware"
	"github.com/romacabello/salon-scheduler/internal/notify"
	ucAppointment "github.com/romacabello/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	notifier *notify.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================

	// One lock table for every ledger write path, so a create and a
	// reschedule aiming at the same day contend on the same mutex.
	bookingLocks := ucAppointment.NewDateLocks()

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
		cfg.BookingAutoConfirm,
		bookingLocks,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(scheduleRepo)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		scheduleRepo,
		auditDispatcher,
		notifier,
		bookingLocks,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	getSlotsUC := ucAppointment.NewGetSlots(scheduleRepo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	availabilityHandler := handlers.NewAvailabilityHandler(db, auditDispatcher)
	blockHandler := handlers.NewBlockHandler(db, auditDispatcher)
	clientHandler := handlers.NewClientHandler(db)
	slotHandler := handlers.NewSlotHandler(getSlotsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	webhookHandler := handlers.NewWebhookHandler(db, auditDispatcher, notifier, log)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		listAppointmentsUC,
		transitionAppointmentUC,
		updateAppointmentUC,
		rescheduleAppointmentUC,
		deleteAppointmentUC,
	)

	// ======================================================
	// OPERATIONAL ENDPOINTS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login",
			middleware.RateLimit(rdb, 5, time.Minute, log),
			authHandler.Login,
		)

		// ------------------------------
		// PUBLIC BOOKING SURFACE
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/slots", slotHandler.List)
		api.GET("/clients/lookup", clientHandler.Lookup)
		api.GET("/availability", availabilityHandler.List)
		api.GET("/blocks", blockHandler.List)

		api.POST("/appointments",
			middleware.RateLimit(rdb, 3, time.Minute, log),
			appointmentHandler.Create,
		)

		// ------------------------------
		// GATEWAY WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/ultramsg", webhookHandler.WhatsApp)

		// ------------------------------
		// ADMIN (JWT)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)
			secured.POST("/auth/update-password", authHandler.UpdatePassword)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/availability/:date", availabilityHandler.Get)
			secured.PUT("/availability/:date", availabilityHandler.Put)
			secured.DELETE("/availability/:date", availabilityHandler.Delete)

			secured.POST("/blocks", blockHandler.Create)
			secured.DELETE("/blocks/:id", blockHandler.Delete)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PUT("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PUT("/appointments/:id/finish", appointmentHandler.Finish)
			secured.PUT("/appointments/:id/no-show", appointmentHandler.NoShow)
			secured.PUT("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/clients", clientHandler.List)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
