package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fadecrew/barbershop-api/internal/audit"
	"github.com/fadecrew/barbershop-api/internal/cache"
	"github.com/fadecrew/barbershop-api/internal/config"
	"github.com/fadecrew/barbershop-api/internal/handlers"
	infraRepo "github.com/fadecrew/barbershop-api/internal/infra/repository"
	"github.com/fadecrew/barbershop-api/internal/media"
	"github.com/fadecrew/barbershop-api/internal/middleware"
	"github.com/fadecrew/barbershop-api/internal/models"
	"github.com/fadecrew/barbershop-api/internal/payments"
	ucBooking "github.com/fadecrew/barbershop-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	catalogCache := cache.New(rdb, 5*time.Minute)
	uploader := media.NewUploader(cfg)
	payClient, err := payments.New(cfg.MPAccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("mercado pago disabled")
		payClient = nil
	}

	grain := time.Duration(cfg.SlotDurationMin) * time.Minute
	cancelLead := time.Duration(cfg.CancelLeadMin) * time.Minute

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, grain)
	blockSlotUC := ucBooking.NewBlockSlot(bookingRepo, auditDispatcher)
	unblockSlotUC := ucBooking.NewUnblockSlot(bookingRepo, auditDispatcher)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		cfg.AllowGuestBooking,
	)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		cancelLead,
	)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher)
	calendarUC := ucBooking.NewGetCalendar(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barbershopHandler := handlers.NewBarbershopHandler(db, catalogCache)
	barberHandler := handlers.NewBarberHandler(db, catalogCache)
	serviceHandler := handlers.NewServiceHandler(db, catalogCache)
	mediaHandler := handlers.NewMediaHandler(db, uploader, catalogCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	timeslotHandler := handlers.NewTimeslotHandler(
		availabilityUC,
		blockSlotUC,
		unblockSlotUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		getBookingUC,
		listBookingsUC,
		cancelBookingUC,
		completeBookingUC,
		calendarUC,
		payClient,
	)

	publicLimit := middleware.RateLimit(rdb, cfg.PublicRateLimit)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", publicLimit, authHandler.Register)
		api.POST("/auth/login", publicLimit, authHandler.Login)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/barbershops", publicLimit, barbershopHandler.List)
		api.GET("/barbershops/:id", publicLimit, barbershopHandler.Get)
		api.GET("/barbershops/:id/barbers", publicLimit, barbershopHandler.ListBarbers)
		api.GET("/services", publicLimit, serviceHandler.List)
		api.GET("/services/:id", publicLimit, serviceHandler.Get)
		api.GET("/barbers/:id", publicLimit, barberHandler.Get)

		// ------------------------------
		// PUBLIC AVAILABILITY
		// ------------------------------
		api.GET("/timeslots/available", publicLimit, timeslotHandler.Available)

		// Guests may book when the policy allows it; authenticated
		// callers get the booking attached to their account.
		api.POST("/bookings", publicLimit, middleware.OptionalAuth(cfg), bookingHandler.Create)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)

			// Bookings
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/calendar", bookingHandler.Calendar)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)
			secured.PATCH("/bookings/:id/complete",
				middleware.RequireRoles(models.RoleBarber, models.RoleAdmin, models.RoleSuperadmin),
				bookingHandler.Complete,
			)

			// Slot management
			staff := secured.Group("/")
			staff.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleSuperadmin))
			{
				staff.POST("/timeslots/block", timeslotHandler.Block)
				staff.DELETE("/timeslots/:id", timeslotHandler.Unblock)

				// Catalog management
				staff.POST("/barbershops", barbershopHandler.Create)
				staff.PATCH("/barbershops/:id", barbershopHandler.Update)
				staff.DELETE("/barbershops/:id", barbershopHandler.Delete)
				staff.POST("/barbershops/:id/images", mediaHandler.UploadShopImage)

				staff.GET("/barbers", barberHandler.List)
				staff.POST("/barbers", barberHandler.Create)
				staff.PATCH("/barbers/:id", barberHandler.Update)
				staff.PUT("/barbers/:id/services", barberHandler.AssignServices)
				staff.DELETE("/barbers/:id", barberHandler.Delete)

				staff.POST("/services", serviceHandler.Create)
				staff.PATCH("/services/:id", serviceHandler.Update)
				staff.DELETE("/services/:id", serviceHandler.Delete)

				staff.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
