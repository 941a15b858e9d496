package services

import (
	"log"
	"math"
	"strings"

	"tripsmith/internal/models/trip_models"
)

// CostServiceInterface derives per-city spending figures from whatever fare
// facts discovery produced. Missing inputs never error: every figure
// degrades to nil/zero with the ambiguity noted on the output record.
type CostServiceInterface interface {
	InferCityCosts(city string, disc trip_models.CityDiscovery, ridesPerDay, nights int) trip_models.CityCosts
}

func NewCostService() CostServiceInterface {
	return &CostService{}
}

type CostService struct{}

func (s *CostService) InferCityCosts(city string, disc trip_models.CityDiscovery, ridesPerDay, nights int) trip_models.CityCosts {
	if ridesPerDay <= 0 {
		ridesPerDay = trip_models.DefaultRidesPerDay
	}
	if nights < 1 {
		nights = 1
	}

	costs := trip_models.CityCosts{
		Transit:  inferTransitPlan(disc.Fares.Transit, ridesPerDay, nights),
		Taxi:     estimateTaxi(disc.Fares.Taxi),
		Lodging:  lodgingEstimate(disc, nights),
		POIEntry: poiEntryCosts(disc.Pois),
	}

	log.Printf("CostInference[%s]: pois=%d transit_choice=%s nights=%d",
		city, len(costs.POIEntry), costs.Transit.PerDayChoice, nights)
	return costs
}

// inferTransitPlan compares riding on single fares against a day pass, and
// against a weekly pass amortized over the stay when the stay is long
// enough to plausibly use one.
func inferTransitPlan(fares trip_models.TransitFares, ridesPerDay, nights int) trip_models.TransitCostPlan {
	single, singleKnown := fares.Single.Amt()
	day, dayKnown := fares.DayPass.Amt()
	week, weekKnown := fares.WeeklyPass.Amt()

	ccy := firstCurrency(fares.DayPass, fares.Single, fares.WeeklyPass)

	plan := trip_models.TransitCostPlan{RidesPerDay: ridesPerDay}

	if singleKnown && single > 0 && dayKnown && day > 0 {
		be := int(math.Ceil(day / single))
		plan.BreakEvenRides = &be
	}

	var perDay *float64
	switch {
	case singleKnown && dayKnown:
		singles := float64(ridesPerDay) * single
		cost := math.Min(singles, day)
		perDay = &cost
		if day <= singles {
			plan.PerDayChoice = trip_models.TransitChoiceDayPass
		} else {
			plan.PerDayChoice = trip_models.TransitChoiceSingle
		}
	case singleKnown:
		cost := float64(ridesPerDay) * single
		perDay = &cost
		plan.PerDayChoice = trip_models.TransitChoiceSingle
	case dayKnown:
		cost := day
		perDay = &cost
		plan.PerDayChoice = trip_models.TransitChoiceDayPass
	}

	if weekKnown && week > 0 && nights >= 5 {
		weeklyPerDay := week / float64(nights)
		if perDay == nil || weeklyPerDay < *perDay {
			perDay = &weeklyPerDay
			plan.PerDayChoice = trip_models.TransitChoiceWeeklyPass
			plan.Notes = "weekly averaged"
		}
	}

	if perDay != nil {
		plan.PerDayCost = trip_models.NewMoney(*perDay, ccy)
	}
	return plan
}

// estimateTaxi passes the tariff through and attaches two illustrative
// fares (a short city hop and an airport-length ride) for display only.
func estimateTaxi(tariff trip_models.TaxiTariff) trip_models.TaxiEstimate {
	estimate := func(distanceKm, minutes float64) *trip_models.Money {
		if tariff.Base == nil && tariff.PerKm == nil && tariff.PerMin == nil {
			return nil
		}
		total := 0.0
		if tariff.Base != nil {
			total += *tariff.Base
		}
		if tariff.PerKm != nil {
			total += *tariff.PerKm * distanceKm
		}
		if tariff.PerMin != nil {
			total += *tariff.PerMin * minutes
		}
		return trip_models.NewMoney(total, tariff.Currency)
	}

	return trip_models.TaxiEstimate{
		Formula:  tariff,
		ShortHop: estimate(3.0, 10.0),
		LongHop:  estimate(25.0, 45.0),
	}
}

// defaultNightlyRate is the placeholder used when no lodging figure was
// discovered for a city.
const defaultNightlyRate = 120.0

func lodgingEstimate(disc trip_models.CityDiscovery, nights int) trip_models.LodgingEstimate {
	rate := defaultNightlyRate
	ccy := ""
	if disc.Lodging != nil {
		rate = disc.Lodging.Amount
		ccy = disc.Lodging.Currency
	}
	if ccy == "" {
		ccy = firstCurrency(disc.Fares.Transit.Single, disc.Fares.Transit.DayPass, disc.Fares.Transit.WeeklyPass)
	}
	if ccy == "" {
		ccy = "USD"
	}

	return trip_models.LodgingEstimate{
		PerNight: trip_models.NewMoney(rate, ccy),
		Nights:   nights,
		Total:    trip_models.NewMoney(rate*float64(nights), ccy),
		Note:     "placeholder",
	}
}

func poiEntryCosts(pois []trip_models.POIFact) []trip_models.POIEntryCost {
	out := make([]trip_models.POIEntryCost, 0, len(pois))
	for _, p := range pois {
		out = append(out, trip_models.POIEntryCost{Name: p.Name, Entry: p.Price})
	}
	return out
}

func firstCurrency(candidates ...*trip_models.Money) string {
	for _, m := range candidates {
		if m != nil && len(m.Currency) >= 3 {
			return strings.ToUpper(m.Currency)
		}
	}
	return ""
}
