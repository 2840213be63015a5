package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/availability"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := newAvailabilityCache(cfg)

	// ======================================================
	// USE CASES — AVAILABILITY
	// ======================================================
	addAvailabilityUC := ucAvailability.NewAddAvailability(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	resolveAvailabilityUC := ucAvailability.NewResolveAvailability(
		schedulingRepo,
		availabilityCache,
	)

	listRecurringUC := ucAvailability.NewListRecurring(schedulingRepo)

	deleteAvailabilityUC := ucAvailability.NewDeleteAvailability(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		schedulingRepo,
		cancelAppointmentUC,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(
		addAvailabilityUC,
		resolveAvailabilityUC,
		listRecurringUC,
		deleteAvailabilityUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		updateStatusUC,
		listAppointmentsUC,
	)

	// ======================================================
	// ROUTES
	// ======================================================

	// ------------------------------
	// AUTH
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/patient/register", authHandler.RegisterPatient)
		auth.POST("/doctor/register", authHandler.RegisterDoctor)
		auth.POST("/login", authHandler.Login)
	}

	// ------------------------------
	// PUBLIC
	// ------------------------------
	r.GET("/profile/doctors", profileHandler.ListDoctors)
	r.GET("/doctors/:doctorUserId/availability", availabilityHandler.GetForDate)

	// ------------------------------
	// SECURED
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/profile/me", profileHandler.GetMe)
		secured.PATCH("/profile/me", profileHandler.UpdateMe)
		secured.DELETE("/profile/me", profileHandler.DeleteMe)

		secured.GET("/doctors/:doctorUserId/availability/recurring", availabilityHandler.GetRecurring)
		secured.POST("/doctors/:doctorUserId/availability", availabilityHandler.Add)
		secured.DELETE("/doctors/:doctorUserId/availability/:slotId", availabilityHandler.Delete)

		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments/my-appointments/patient", appointmentHandler.ListMyPatientAppointments)
		secured.GET("/appointments/my-appointments/doctor", appointmentHandler.ListMyDoctorAppointments)
		secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
		secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		secured.DELETE("/appointments/:id", appointmentHandler.Cancel)
	}
}

func newAvailabilityCache(cfg *config.Config) *cache.Availability {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, availability cache disabled: %v", err)
		return nil
	}

	return cache.NewAvailability(redis.NewClient(opt))
}
