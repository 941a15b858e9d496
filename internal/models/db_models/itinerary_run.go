package db_models

// ItineraryRun is one persisted engine run. The payload is the full
// PlanResult as JSON; runs are derived artifacts, so re-planning inserts a
// new row instead of mutating an old one.
type ItineraryRun struct {
	BaseModel
	SessionID string `gorm:"index"`
	Cities    string
	Nights    int
	Payload   []byte `gorm:"type:jsonb"`
}
