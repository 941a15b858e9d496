package memcache_fx

import (
	"go.uber.org/fx"
	mem "tripsmith/pkg/memcache"
)

var Module = fx.Provide(providePlanCache)

func providePlanCache() mem.PlanCache {
	return mem.NewPlanResults()
}
