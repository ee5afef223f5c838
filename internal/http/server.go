// README: API gateway; registers gin routes and delegates to module services.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/http/handlers"
	"tripcraft/internal/http/middleware"
)

// ServerDeps lists the collaborators behind the routes. Only Plans is required;
// routes of nil collaborators are not registered. Without Auth, trip routes answer 401.
type ServerDeps struct {
	Logger         *slog.Logger
	Plans          handlers.PlanService
	Trips          handlers.TripService
	Hotels         handlers.HotelService
	Places         handlers.PlaceSearcher
	Routes         handlers.RouteEstimator
	Images         handlers.ImageAnalyzer
	Usage          handlers.UsageReporter
	Auth           gin.HandlerFunc
	MaxUploadBytes int64
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Auth == nil {
		deps.Auth = func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication is not configured"})
		}
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 10 << 20
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	d := s.deps
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(d.Logger), middleware.Recovery(d.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	planHandler := handlers.NewPlanHandler(d.Plans)
	r.POST("/plans", planHandler.Create)
	r.GET("/plans/schema", planHandler.Schema)

	api := r.Group("/api")
	api.POST("/ai-recommendations", planHandler.Recommend)

	if d.Images != nil {
		imageHandler := handlers.NewImageHandler(d.Images, d.MaxUploadBytes)
		api.POST("/analyze-image", imageHandler.Analyze)
	}

	if d.Trips != nil {
		tripHandler := handlers.NewTripHandler(d.Trips)
		trips := api.Group("/trips", d.Auth)
		trips.POST("", tripHandler.Save)
		trips.GET("", tripHandler.List)
		trips.GET("/:id", tripHandler.Get)
	}

	if d.Hotels != nil {
		hotelHandler := handlers.NewHotelHandler(d.Hotels)
		api.GET("/hotels", hotelHandler.List)
		api.GET("/hotels/:id/availability", hotelHandler.Availability)
		api.POST("/hotels/:id/book", hotelHandler.Book)
		api.POST("/bookings/:id/pay", hotelHandler.Pay)
	}

	if d.Places != nil && d.Routes != nil {
		mapsHandler := handlers.NewMapsHandler(d.Places, d.Routes)
		api.GET("/places/photos", mapsHandler.Photos)
		api.GET("/routes/estimate", mapsHandler.Estimate)
	}

	if d.Usage != nil {
		usageHandler := handlers.NewUsageHandler(d.Usage)
		api.GET("/ai/usage", usageHandler.Summary)
	}

	return r
}
