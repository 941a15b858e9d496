package controllers_fx

import (
	"go.uber.org/fx"
	"tripsmith/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewSystemController))
