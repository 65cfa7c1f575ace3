package api

import (
	"log"
	stdhttp "net/http"

	"busbooking/internal/config"
	"busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	guard := middleware.Guard{Secret: []byte(env.JWTSecret), Roles: h.Profiles}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)

		// Trip search is public: visitors browse before signing in.
		api.GET("/trips/search", h.SearchTrips)
		api.GET("/trips/:id", h.GetTrip)

		signedIn := api.Group("")
		signedIn.Use(guard.Middleware(false))
		{
			signedIn.GET("/auth/session", h.Session)

			signedIn.POST("/bookings", h.CreateBooking)
			signedIn.GET("/bookings", h.ListMyBookings)
			signedIn.GET("/bookings/:id/e-ticket", h.GetBookingETicket)

			signedIn.GET("/profile", h.GetProfile)
			signedIn.PUT("/profile", h.UpdateProfile)

			signedIn.GET("/notifications", h.ListMyNotifications)
			signedIn.PUT("/notifications/:id/read", h.MarkNotificationRead)

			signedIn.POST("/reviews", h.CreateReview)

			signedIn.GET("/events", h.StreamEvents)
		}

		admin := api.Group("/admin")
		admin.Use(guard.Middleware(true))
		{
			admin.GET("/trips", h.AdminListTrips)
			admin.POST("/trips", h.AdminCreateTrip)
			admin.PUT("/trips/:id", h.AdminUpdateTrip)
			admin.DELETE("/trips/:id", h.AdminDeleteTrip)

			admin.GET("/companies", h.AdminListCompanies)
			admin.POST("/companies", h.AdminCreateCompany)
			admin.PUT("/companies/:id", h.AdminUpdateCompany)
			admin.DELETE("/companies/:id", h.AdminDeleteCompany)

			admin.GET("/bookings", h.AdminListBookings)
			admin.PUT("/bookings/:id/status", h.AdminUpdateBookingStatus)

			admin.GET("/reviews", h.AdminListReviews)
			admin.DELETE("/reviews/:id", h.AdminDeleteReview)

			admin.GET("/notifications", h.AdminListNotifications)
			admin.POST("/notifications", h.AdminCreateNotification)
			admin.DELETE("/notifications/:id", h.AdminDeleteNotification)

			admin.GET("/users", h.AdminListUsers)
			admin.PUT("/users/:id/role", h.AdminUpdateUserRole)

			admin.GET("/payments", h.AdminListPayments)

			admin.GET("/stats", h.AdminStats)
			admin.GET("/stats/payments", h.AdminPaymentStats)
		}
	}

	return r
}
