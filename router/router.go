package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	bookingCtrl := controllers.NewBookingController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "online",
			"service": "Restaurant Booking System API",
			"version": "1.0.0",
		})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      PROTECTED ROUTES
	// ----------------------------------------------------------------
	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(db))
	{
		protected.POST("/logout", userCtrl.Logout)
		protected.GET("/users/me", userCtrl.GetProfile)

		// Admin saja
		adminOnly := protected.Group("/")
		adminOnly.Use(middlewares.RequireRoles(models.RoleAdmin))
		{
			adminOnly.GET("/users", userCtrl.GetAllUsers)
			adminOnly.PUT("/users/:user_id/role", userCtrl.UpdateUserRole)
			adminOnly.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		}

		// Admin atau staff
		staffOnly := protected.Group("/")
		staffOnly.Use(middlewares.RequireRoles(models.RoleAdmin, models.RoleStaff))
		{
			staffOnly.POST("/tables", tableCtrl.CreateTable)
			staffOnly.PUT("/tables/:table_id", tableCtrl.UpdateTable)
		}

		// Semua role yang sudah login
		protected.GET("/tables", tableCtrl.GetAllTables)
		protected.GET("/tables/:table_id", tableCtrl.GetTableByID)

		// Otorisasi per-booking (ownership) dicek di controller
		protected.GET("/bookings", bookingCtrl.GetAllBookings)
		protected.POST("/bookings", bookingCtrl.CreateBooking)
		protected.PUT("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		protected.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)
	}

	return r
}
