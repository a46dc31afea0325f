package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lotopos/animalitos-pos-backend/internal/config"
	"github.com/lotopos/animalitos-pos-backend/internal/handlers"
	"github.com/lotopos/animalitos-pos-backend/internal/middleware"
)

// Handlers bundles the constructed handlers for route registration
type Handlers struct {
	Auth    *handlers.AuthHandler
	Catalog *handlers.CatalogHandler
	Cart    *handlers.CartHandler
	Ticket  *handlers.TicketHandler
	Sales   *handlers.SalesHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}
	}

	// Protected routes: everything a till does after login
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		catalog := protected.Group("/catalog")
		{
			catalog.GET("/lotteries", h.Catalog.Lotteries)
			catalog.GET("/outcomes", h.Catalog.Outcomes)
		}

		cart := protected.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.POST("/lines", h.Cart.AddLines)
			cart.DELETE("/lines/:lineId", h.Cart.RemoveLine)
			cart.DELETE("", h.Cart.Clear)
			cart.POST("/repeat/:ticketNumber", h.Ticket.Repeat)
		}

		tickets := protected.Group("/tickets")
		{
			tickets.POST("", h.Ticket.Submit)
			tickets.GET("/:ref", h.Ticket.Lookup)
			tickets.POST("/:ref/void", h.Ticket.Void)
			tickets.POST("/:ref/pay", h.Ticket.Pay)
			tickets.POST("/:ref/winner", h.Ticket.MarkWinner)
		}

		sales := protected.Group("/sales")
		{
			sales.GET("/summary", h.Sales.Summary)
		}
	}

	return router
}
