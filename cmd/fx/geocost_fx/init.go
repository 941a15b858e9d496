package geocost_fx

import (
	"go.uber.org/fx"
	"tripsmith/internal/services"
)

var Module = fx.Provide(provideGraphService)

func provideGraphService() services.GraphServiceInterface {
	return services.NewGraphService(services.DefaultGraphConfig())
}
