package routes

import (
	"net/http"
	"time"

	"salonbook/config"
	"salonbook/handlers"
	"salonbook/middleware"
	"salonbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute reports the last dependency health check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm salonbook"})
	})
}

// RegisterBookingRoutes sets up slot lookup, quoting and appointments.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/slots", hb.Booking.SlotsHandler)
	api.GET("/quote", hb.Booking.QuoteHandler)

	appts := api.Group("/appointments")
	{
		appts.POST("", hb.Booking.BookHandler)
		appts.GET("", hb.Appointments.ListHandler)
		appts.GET("/:id", hb.Appointments.GetHandler)
		appts.PATCH("/:id/status", hb.Appointments.SetStatusHandler)
		appts.PATCH("/:id/package", hb.Appointments.ChangePackageHandler)
		appts.DELETE("/:id", hb.Appointments.CancelHandler)
	}
}

// RegisterPackageRoutes sets up templates and the client package ledger.
func RegisterPackageRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	pkgs := api.Group("/packages")
	{
		pkgs.POST("/templates", hb.Packages.CreateTemplateHandler)
		pkgs.GET("/templates", hb.Packages.ListTemplatesHandler)
		pkgs.PUT("/templates/:id", hb.Packages.UpdateTemplateHandler)
		pkgs.DELETE("/templates/:id", hb.Packages.DeleteTemplateHandler)

		pkgs.POST("/buy", hb.Packages.BuyHandler)
		pkgs.GET("/clients/:clientId", hb.Packages.ClientPackagesHandler)
		pkgs.GET("/clients/:clientId/active", hb.Packages.ActiveHandler)
		pkgs.POST("/:id/use", hb.Packages.UseCreditHandler)
		pkgs.POST("/:id/return", hb.Packages.ReturnCreditHandler)
	}
}

// RegisterCatalogRoutes sets up services, professionals, clients and discounts.
func RegisterCatalogRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	h := hb.Catalog

	services := api.Group("/services")
	{
		services.POST("", h.CreateServiceHandler)
		services.GET("", h.ListServicesHandler)
		services.GET("/:id", h.GetServiceHandler)
		services.PUT("/:id", h.UpdateServiceHandler)
		services.DELETE("/:id", h.DeleteServiceHandler)
	}

	pros := api.Group("/professionals")
	{
		pros.POST("", h.CreateProfessionalHandler)
		pros.GET("", h.ListProfessionalsHandler)
		pros.GET("/:id", h.GetProfessionalHandler)
		pros.PUT("/:id", h.UpdateProfessionalHandler)
		pros.DELETE("/:id", h.DeleteProfessionalHandler)
	}

	clients := api.Group("/clients")
	{
		clients.POST("", h.CreateClientHandler)
		clients.GET("", h.ListClientsHandler)
		clients.GET("/:id", h.GetClientHandler)
		clients.PUT("/:id", h.UpdateClientHandler)
		clients.DELETE("/:id", h.DeleteClientHandler)
	}

	discounts := api.Group("/discounts")
	{
		discounts.POST("", h.CreateDiscountHandler)
		discounts.GET("", h.ListDiscountsHandler)
		discounts.PUT("/:id", h.UpdateDiscountHandler)
		discounts.DELETE("/:id", h.DeleteDiscountHandler)
	}
}

func RegisterRetouchRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/retouch/alerts", hb.Retouch.AlertsHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AppConfig.Origins()
	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	if allowAll {
		origins = nil
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowAllOrigins:  allowAll,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowAll,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())
	RegisterBookingRoutes(api, hb)
	RegisterPackageRoutes(api, hb)
	RegisterCatalogRoutes(api, hb)
	RegisterRetouchRoutes(api, hb)
}
