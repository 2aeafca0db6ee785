package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/agendaestetica/detailing-scheduler/internal/audit"
	"github.com/agendaestetica/detailing-scheduler/internal/cache"
	"github.com/agendaestetica/detailing-scheduler/internal/config"
	"github.com/agendaestetica/detailing-scheduler/internal/handlers"
	infraRepo "github.com/agendaestetica/detailing-scheduler/internal/infra/repository"
	"github.com/agendaestetica/detailing-scheduler/internal/middleware"
	"github.com/agendaestetica/detailing-scheduler/internal/notify"
	"github.com/agendaestetica/detailing-scheduler/internal/payments"
	"github.com/agendaestetica/detailing-scheduler/internal/storage"
	ucAppointment "github.com/agendaestetica/detailing-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.EvolutionURL != "" && cfg.EvolutionKey != "" {
		wa := notify.NewWhatsAppClient(cfg.EvolutionURL, cfg.EvolutionKey, cfg.EvolutionInstance)
		notifier = notify.NewDispatcher(wa)
	}

	var linker payments.Linker
	if cfg.MPAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MPAccessToken)
		if err == nil {
			linker = mp
		}
	}

	var availCache *cache.AvailabilityCache
	if rdb != nil {
		availCache = cache.NewAvailabilityCache(rdb)
	}

	var photoStore *storage.PhotoStore
	if cfg.S3Bucket != "" {
		photoStore = storage.NewPhotoStore(
			cfg.AWSRegion,
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			cfg.S3Bucket,
			cfg.S3BaseURL,
		)
	}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		schedulingRepo,
		auditDispatcher,
		notifier,
		linker,
		availCache,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		schedulingRepo,
		auditDispatcher,
		availCache,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		schedulingRepo,
		auditDispatcher,
		notifier,
		availCache,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(schedulingRepo)

	availabilityUC := ucAppointment.NewGetAvailability(
		schedulingRepo,
		availCache,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db, photoStore)
	scheduleHandler := handlers.NewScheduleHandler(db)
	blackoutHandler := handlers.NewBlackoutHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
		availabilityUC,
	)

	agendaHandler := handlers.NewAgendaHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/tenant", tenantHandler.Get)
			secured.PATCH("/me/tenant", tenantHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/customers", customerHandler.List)
			secured.GET("/me/customers/:id", customerHandler.Get)
			secured.POST("/me/customers", customerHandler.Create)
			secured.PATCH("/me/customers/:id", customerHandler.Update)

			secured.GET("/me/vehicles", vehicleHandler.List)
			secured.POST("/me/vehicles", vehicleHandler.Create)
			secured.PATCH("/me/vehicles/:id", vehicleHandler.Update)
			secured.DELETE("/me/vehicles/:id", vehicleHandler.Delete)
			secured.POST("/me/vehicles/:id/photo", vehicleHandler.UploadPhoto)

			secured.GET("/me/schedule", scheduleHandler.Get)
			secured.PUT("/me/schedule", scheduleHandler.Update)

			secured.GET("/me/blackouts", blackoutHandler.List)
			secured.POST("/me/blackouts", blackoutHandler.Create)
			secured.PATCH("/me/blackouts/:id", blackoutHandler.Update)
			secured.DELETE("/me/blackouts/:id", blackoutHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.GET("/me/agenda", agendaHandler.Day)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
