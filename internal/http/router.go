package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/nagrik-seva/backend/internal/config"
	"github.com/nagrik-seva/backend/internal/db"
	"github.com/nagrik-seva/backend/internal/http/handlers"
	"github.com/nagrik-seva/backend/internal/http/middleware"
	"github.com/nagrik-seva/backend/internal/service"

	_ "github.com/nagrik-seva/backend/docs"
)

func Router(cfg config.Config, store db.Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Lifecycle: &service.LifecycleService{Store: store, Logger: logger},
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/issues", h.IssuesList)
		api.POST("/issues", h.IssueCreate)
		api.GET("/issues/:id", h.IssueGet)
		api.GET("/messages", h.MessagesList)
		api.POST("/messages", h.MessageCreate)
		api.POST("/analyze", h.Analyze)
	}

	sim := api.Group("")
	sim.Use(middleware.AdminKey(cfg.AdminKey))
	{
		sim.POST("/issues/:id/simulate", h.IssueSimulate)
		sim.POST("/simulate-days", h.SimulateDays)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
