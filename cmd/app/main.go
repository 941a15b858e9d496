package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripsmith/cmd/fx/controllers_fx"
	"tripsmith/cmd/fx/costs_fx"
	"tripsmith/cmd/fx/db_fx"
	"tripsmith/cmd/fx/geocost_fx"
	"tripsmith/cmd/fx/itinerary_fx"
	"tripsmith/cmd/fx/memcache_fx"
	"tripsmith/internal/api/controllers"
	"tripsmith/internal/infra"
	"tripsmith/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		costs_fx.Module,
		geocost_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Println("Starting HTTP server at :" + port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	systemController *controllers.SystemController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, systemController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	systemController *controllers.SystemController) {

	r.GET("/healthz", systemController.Healthz)

	itineraryGroup := r.Group("/itineraries")
	if os.Getenv("JWT_SECRET") != "" {
		itineraryGroup.POST("/plan", middleware.JWTAuthMiddleware(), itineraryController.PlanItinerary)
	} else {
		itineraryGroup.POST("/plan", itineraryController.PlanItinerary)
	}
	itineraryGroup.GET("/:runId", itineraryController.GetItineraryRun)

	sessionGroup := r.Group("/sessions")
	sessionGroup.GET("/:sessionId/runs", itineraryController.ListRunsBySession)
}
