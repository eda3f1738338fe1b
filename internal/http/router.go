package api

import (
	"log"
	stdhttp "net/http"

	"aviatickets/internal/config"
	h "aviatickets/internal/http/handlers"
	"aviatickets/internal/http/middleware"
	"aviatickets/internal/repositories"
	"aviatickets/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, store repositories.BookingStore, gateway services.ProviderAPI) *gin.Engine {
	h.Init(env, store, gateway)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

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

	secret := []byte(env.JWTSecret)

	r.GET("/health", h.Health)
	r.GET("/flights/search", h.SearchFlights)

	auth := r.Group("/auth")
	auth.POST("/login", h.Login)
	auth.POST("/register", h.Register)

	booking := r.Group("/booking")
	booking.Use(middleware.Auth(secret, false))
	booking.POST("/create", h.CreateBooking)
	booking.POST("/confirm", h.ConfirmBooking)
	booking.GET("/:id/pdf", h.GetBookingPDF)

	r.GET("/bookings", middleware.Auth(secret, true), h.ListBookings)
	r.PUT("/me", middleware.Auth(secret, true), h.UpdateProfile)

	return r
}
