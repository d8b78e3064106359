package recorder

import "CashCycle/internal/model"

// AdvanceEvent records one simulation day advance.
type AdvanceEvent struct {
	Date         string
	Event        string // consumed pending event, empty if none
	FleetNetFlow int64
}

// ForecastEvent summarises one forecast/optimization run.
type ForecastEvent struct {
	ForDate          string
	SurplusCount     int
	DeficitCount     int
	StableCount      int
	TransferCount    int
	RefillCount      int
	EstimatedSavings int64
}

// ResetEvent records a wholesale history regeneration.
type ResetEvent struct {
	Days     int
	Machines int
}

// Recorder persists an audit trail of simulation and rebalancing activity.
// Recording is best-effort; failures are logged by callers, never fatal.
type Recorder interface {
	RecordAdvance(evt *AdvanceEvent) error
	RecordForecast(evt *ForecastEvent, schedule []model.TransferAction) error
	RecordReset(evt *ResetEvent) error
	Close() error
}
