package handlers

import (
	"home_climate/internal/logger"
	"home_climate/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID, h.accessLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Snapshot stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/telemetry", h.saveTelemetry)
		api.GET("/history", h.getHistory)
		api.GET("/data", h.getHistory) // legacy dashboard path
		api.GET("/datetime", h.getDateTime)
		api.GET("/commands", h.getCommands)

		h.registerACRoutes(api)
		h.registerActuatorRoutes(api)
		h.registerWeatherRoutes(api)
	}
}

func (h *Handler) registerACRoutes(api *gin.RouterGroup) {
	ac := api.Group("/ac")
	{
		// Body example: {"is_on":true,"target_temp":24,"mode":"manual"}
		ac.POST("/manual", h.manualUpdate)
		ac.POST("/automation", h.automationUpdate)
		ac.GET("/settings", h.getACSettings)
	}
}

func (h *Handler) registerActuatorRoutes(api *gin.RouterGroup) {
	act := api.Group("/actuator")
	{
		act.GET("/state", h.getActuatorState)
		act.POST("/state", h.updateActuatorState)
	}
}

func (h *Handler) registerWeatherRoutes(api *gin.RouterGroup) {
	w := api.Group("/weather")
	{
		w.GET("/current", h.getCurrentWeather)
		w.GET("/forecast", h.getForecast)
	}
}
