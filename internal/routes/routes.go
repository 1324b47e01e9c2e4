package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/barbera-app/barbera-api/internal/audit"
	"github.com/barbera-app/barbera-api/internal/cache"
	"github.com/barbera-app/barbera-api/internal/config"
	"github.com/barbera-app/barbera-api/internal/handlers"
	infraRepo "github.com/barbera-app/barbera-api/internal/infra/repository"
	"github.com/barbera-app/barbera-api/internal/middleware"
	"github.com/barbera-app/barbera-api/internal/models"
	"github.com/barbera-app/barbera-api/internal/payments"
	"github.com/barbera-app/barbera-api/internal/storage"
	ucBooking "github.com/barbera-app/barbera-api/internal/usecase/booking"
	ucSchedule "github.com/barbera-app/barbera-api/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	scheduleCache := cache.NewScheduleCache(rdb)
	mediaStore := storage.NewMediaStore(cfg)
	stripeClient := payments.New(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	calendarUC := ucBooking.NewCalendar(bookingRepo, scheduleCache)

	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	cancelAppointmentUC := ucBooking.NewCancelAppointment(bookingRepo, auditDispatcher)
	completeAppointmentUC := ucBooking.NewCompleteAppointment(bookingRepo, auditDispatcher)
	listAppointmentsUC := ucBooking.NewListAppointments(bookingRepo)

	getScheduleUC := ucSchedule.NewGetWeeklySchedule(bookingRepo)
	replaceScheduleUC := ucSchedule.NewReplaceWeeklySchedule(
		bookingRepo,
		scheduleCache,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, mediaStore)
	serviceHandler := handlers.NewServiceHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(getScheduleUC, replaceScheduleUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		cancelAppointmentUC,
		completeAppointmentUC,
	)

	publicHandler := handlers.NewPublicHandler(db, getAvailabilityUC, calendarUC)
	postHandler := handlers.NewPostHandler(db, mediaStore, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)

	auditLogHandler := handlers.NewAuditLogHandler(db)

	paymentHandler := handlers.NewPaymentHandler(
		db,
		stripeClient,
		getAvailabilityUC,
		createBookingUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:username", publicHandler.GetProfile)
			publicAPI.GET("/:username/services", publicHandler.ListServices)
			publicAPI.GET("/:username/availability", publicHandler.Availability)
			publicAPI.GET("/:username/calendar", publicHandler.Calendar)
			publicAPI.GET("/:username/posts", publicHandler.ListPosts)
			publicAPI.GET("/:username/reviews", publicHandler.ListReviews)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// Stripe calls this; signature check replaces auth.
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// 🔐 PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)
			secured.GET("/me/audit-logs", auditLogHandler.List)

			// ------------------------------
			// BARBER SIDE
			// ------------------------------
			barber := secured.Group("/me")
			barber.Use(middleware.RequireRole(models.RoleBarber))
			{
				barber.GET("/services", serviceHandler.List)
				barber.POST("/services", serviceHandler.Create)
				barber.PATCH("/services/:id", serviceHandler.Update)

				barber.GET("/availability", availabilityHandler.Get)
				barber.PUT("/availability", availabilityHandler.Update)

				barber.GET("/appointments", appointmentHandler.ListByDate)
				barber.GET("/appointments/month", appointmentHandler.ListByMonth)
				barber.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				barber.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

				barber.GET("/posts", postHandler.ListMine)
				barber.POST("/posts", postHandler.Create)
				barber.DELETE("/posts/:id", postHandler.Delete)
			}

			secured.POST("/stripe/onboard", middleware.RequireRole(models.RoleBarber), paymentHandler.Onboard)
			secured.GET("/stripe/dashboard", middleware.RequireRole(models.RoleBarber), paymentHandler.Dashboard)

			// ------------------------------
			// CUSTOMER SIDE
			// ------------------------------
			customer := secured.Group("/")
			customer.Use(middleware.RequireRole(models.RoleCustomer))
			{
				customer.POST("/bookings/checkout", paymentHandler.Checkout)
				customer.GET("/bookings/verify", paymentHandler.Verify)

				customer.GET("/me/bookings", appointmentHandler.ListMine)
				customer.PATCH("/me/bookings/:id/cancel", appointmentHandler.CancelMine)

				customer.POST("/me/reviews", reviewHandler.Create)
			}
		}
	}
}
