package model

import "time"

// RiskTolerance selects the threshold profile for rebalancing decisions.
type RiskTolerance string

const (
	RiskAggressive   RiskTolerance = "aggressive"
	RiskModerate     RiskTolerance = "moderate"
	RiskConservative RiskTolerance = "conservative"
)

// RuntimeConfig holds the operational parameters mutable at runtime.
type RuntimeConfig struct {
	RiskTolerance     RiskTolerance `json:"risk_tolerance"`
	MinCashThreshold  int64         `json:"min_cash_threshold"`
	MaxCashThreshold  int64         `json:"max_cash_threshold"`
	CostPerTrip       int64         `json:"cost_per_trip"`
	InterestRateDaily float64       `json:"interest_rate_daily"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// DefaultRuntimeConfig returns the moderate-profile defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		RiskTolerance:     RiskModerate,
		MinCashThreshold:  100000,
		MaxCashThreshold:  500000,
		CostPerTrip:       2000,
		InterestRateDaily: 0.0002, // roughly 7% per annum
	}
}

// ThresholdsFor returns the (min, max) cash thresholds for a risk profile.
// Unknown profiles fall back to moderate.
func ThresholdsFor(risk RiskTolerance) (min, max int64) {
	switch risk {
	case RiskAggressive:
		return 50000, 300000
	case RiskConservative:
		return 200000, 800000
	default:
		return 100000, 500000
	}
}
