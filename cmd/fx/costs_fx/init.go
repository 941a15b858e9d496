package costs_fx

import (
	"go.uber.org/fx"
	"tripsmith/internal/services"
)

var Module = fx.Provide(provideCostService)

func provideCostService() services.CostServiceInterface {
	return services.NewCostService()
}
