package mem

import (
	"testing"
	"time"

	"tripsmith/internal/models/trip_models"
)

func TestPlanResultsSetPeek(t *testing.T) {
	cache := NewPlanResults()

	if _, ok := cache.Peek("missing"); ok {
		t.Fatal("empty cache should miss")
	}

	plan := &trip_models.PlanResult{RunID: "r1", Nights: 2}
	cache.Set("fp1", plan, time.Minute)

	got, ok := cache.Peek("fp1")
	if !ok || got.RunID != "r1" {
		t.Fatalf("peek = %+v, %v", got, ok)
	}

	// Peek does not consume.
	if _, ok := cache.Peek("fp1"); !ok {
		t.Fatal("second peek should still hit")
	}
}

func TestPlanResultsExpiry(t *testing.T) {
	cache := NewPlanResults()
	cache.Set("fp1", &trip_models.PlanResult{RunID: "r1"}, -time.Second)

	if _, ok := cache.Peek("fp1"); ok {
		t.Fatal("expired entry should miss")
	}
}
