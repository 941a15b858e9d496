package request_models

import (
	"tripsmith/internal/models/trip_models"
)

// PlanTripRequest carries the discovery record and trip framing for one run.
type PlanTripRequest struct {
	SessionID      string                               `json:"session_id"`
	Cities         []string                             `json:"cities"`
	Discovery      map[string]trip_models.CityDiscovery `json:"discovery"`
	Dates          *trip_models.TripDates               `json:"dates"`
	Assumptions    trip_models.Assumptions              `json:"assumptions"`
	TargetCurrency string                               `json:"target_currency"`
	Budget         *trip_models.BudgetCaps              `json:"budget"`
	MealPrices     map[string]float64                   `json:"meal_prices"`
}

func (r *PlanTripRequest) ToSession() trip_models.PlanSession {
	return trip_models.PlanSession{
		SessionID:      r.SessionID,
		Cities:         r.Cities,
		Discovery:      trip_models.Discovery{Cities: r.Discovery},
		Dates:          r.Dates,
		Assumptions:    r.Assumptions,
		TargetCurrency: r.TargetCurrency,
		Budget:         r.Budget,
		MealPrices:     r.MealPrices,
	}
}
