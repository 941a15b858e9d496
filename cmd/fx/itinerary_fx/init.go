package itinerary_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripsmith/internal/repositories"
	"tripsmith/internal/services"
	mem "tripsmith/pkg/memcache"
	"tripsmith/pkg/utils"
)

var Module = fx.Provide(provideRunRepo, provideScheduler, provideTripService)

func provideRunRepo(db *gorm.DB) repositories.ItineraryRunRepository {
	return repositories.NewItineraryRunRepository(db)
}

func provideScheduler() services.SchedulerServiceInterface {
	cfg := services.DefaultScheduleConfig()
	if min, ok := utils.ClockToMinutes(os.Getenv("DAY_START")); ok {
		cfg.DayStartMin = min
	}
	if min, ok := utils.ClockToMinutes(os.Getenv("DAY_END")); ok {
		cfg.DayEndMin = min
	}
	return services.NewSchedulerService(cfg)
}

func provideTripService(
	costService services.CostServiceInterface,
	graphService services.GraphServiceInterface,
	scheduler services.SchedulerServiceInterface,
	runRepo repositories.ItineraryRunRepository,
	cache mem.PlanCache) services.TripServiceInterface {

	return services.NewTripService(costService, graphService, scheduler, runRepo, cache)
}
