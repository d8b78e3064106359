package predictor

import (
	"errors"

	"CashCycle/internal/model"
)

// Predictor maps feature rows to predicted net cash flows, one per input row,
// same order. The core treats it as a black box behind this contract: any
// numeric output, including zero and negative flows, is valid.
type Predictor interface {
	Predict(rows []model.FeatureRow) ([]float64, error)
	Name() string
}

// Calendar-effect offsets used by the baseline model. Rough money-unit
// equivalents of the generator's multiplicative demand effects.
const (
	paydayDrag   = -140000
	weekendDrag  = -60000
	festivalDrag = -250000
)

// Baseline is a deterministic seasonal blend standing in for an externally
// trained boosted-tree regressor: the short-term trend dominates, last week's
// value captures weekly seasonality, and the calendar flags shift the
// estimate by the known effect sizes.
type Baseline struct{}

func NewBaseline() *Baseline { return &Baseline{} }

func (b *Baseline) Name() string { return "baseline" }

func (b *Baseline) Predict(rows []model.FeatureRow) ([]float64, error) {
	flows := make([]float64, len(rows))
	for i, r := range rows {
		flow := 0.6*r.NetFlowRolling3 + 0.4*r.NetFlowLag7
		if r.IsPayday {
			flow += paydayDrag
		}
		if r.IsWeekend {
			flow += weekendDrag
		}
		if r.IsFestival {
			flow += festivalDrag
		}
		flows[i] = flow
	}
	return flows, nil
}

// Stub returns canned flows for tests, decoupling engine and optimizer tests
// from model variance.
type Stub struct {
	Flows []float64
	Err   error
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Predict(rows []model.FeatureRow) ([]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Flows) != len(rows) {
		return nil, errors.New("stub: flow count does not match row count")
	}
	return s.Flows, nil
}
