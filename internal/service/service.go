package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"CashCycle/internal/model"
	"CashCycle/internal/optimizer"
	"CashCycle/internal/predictor"
	"CashCycle/internal/recorder"
	"CashCycle/internal/simulation"
)

const dateLayout = "2006-01-02"

// ErrMachineNotFound is returned when a requested machine has no history.
var ErrMachineNotFound = errors.New("machine not found")

// refillDetectionFlow marks inflows large enough to look like completed
// refills in the drill-down view.
const refillDetectionFlow = 200000

// Service binds the simulation engine, predictor, and optimizer behind one
// facade and owns the runtime configuration. All operations are serialized
// with a single mutex; the core beneath assumes one mutating caller.
type Service struct {
	mu      sync.Mutex
	engine  *simulation.Engine
	pred    predictor.Predictor
	rec     recorder.Recorder
	config  model.RuntimeConfig
	cfgPath string
}

// New loads the runtime config and the simulation history (regenerating it
// on load failure) and returns a ready service.
func New(engine *simulation.Engine, pred predictor.Predictor, rec recorder.Recorder, cfgPath string) (*Service, error) {
	cfg, err := LoadRuntimeConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load runtime config: %w", err)
	}
	if err := engine.LoadOrInit(); err != nil {
		return nil, fmt.Errorf("init simulation: %w", err)
	}
	s := &Service{
		engine:  engine,
		pred:    pred,
		rec:     rec,
		config:  cfg,
		cfgPath: cfgPath,
	}
	if err := SaveRuntimeConfig(cfgPath, &s.config); err != nil {
		return nil, fmt.Errorf("save runtime config: %w", err)
	}
	return s, nil
}

// Config returns a copy of the current runtime configuration.
func (s *Service) Config() model.RuntimeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// ConfigUpdate carries an explicit runtime-config change; nil fields are
// left untouched. A risk-tolerance change overwrites both thresholds from
// the profile table regardless of explicit threshold values.
type ConfigUpdate struct {
	RiskTolerance     *model.RiskTolerance
	MinCashThreshold  *int64
	MaxCashThreshold  *int64
	CostPerTrip       *int64
	InterestRateDaily *float64
}

// UpdateConfig applies an update and persists the result.
func (s *Service) UpdateConfig(u ConfigUpdate) (model.RuntimeConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.MinCashThreshold != nil {
		s.config.MinCashThreshold = *u.MinCashThreshold
	}
	if u.MaxCashThreshold != nil {
		s.config.MaxCashThreshold = *u.MaxCashThreshold
	}
	if u.CostPerTrip != nil {
		s.config.CostPerTrip = *u.CostPerTrip
	}
	if u.InterestRateDaily != nil {
		s.config.InterestRateDaily = *u.InterestRateDaily
	}
	if u.RiskTolerance != nil {
		risk := *u.RiskTolerance
		switch risk {
		case model.RiskAggressive, model.RiskModerate, model.RiskConservative:
		default:
			return s.config, fmt.Errorf("unknown risk tolerance %q", risk)
		}
		s.config.RiskTolerance = risk
		s.config.MinCashThreshold, s.config.MaxCashThreshold = model.ThresholdsFor(risk)
	}

	log.Printf("[INFO] runtime config updated: risk=%s min=%d max=%d",
		s.config.RiskTolerance, s.config.MinCashThreshold, s.config.MaxCashThreshold)
	if err := SaveRuntimeConfig(s.cfgPath, &s.config); err != nil {
		return s.config, fmt.Errorf("save runtime config: %w", err)
	}
	return s.config, nil
}

// Status returns the fleet summary for the latest simulated day plus a
// 30-day net-flow series for charts.
func (s *Service) Status() (model.NetworkStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.engine.History()
	if len(h) == 0 {
		return model.NetworkStatus{}, simulation.ErrNotReady
	}
	latest := h.MaxDate()
	cutoff := latest.AddDate(0, 0, -30)

	var total int64
	daily := map[time.Time]int64{}
	for _, o := range h {
		if o.Date.Equal(latest) {
			total += o.NetCashFlow()
		}
		if o.Date.After(cutoff) {
			daily[o.Date] += o.NetCashFlow()
		}
	}

	dates := make([]time.Time, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	chart := make([]model.DailyFlowPoint, 0, len(dates))
	for _, d := range dates {
		chart = append(chart, model.DailyFlowPoint{
			Date:    d.Format(dateLayout),
			NetFlow: daily[d],
		})
	}

	return model.NetworkStatus{
		Date:          latest.Format(dateLayout),
		TotalCashFlow: total,
		ChartData:     chart,
		Config:        s.config,
	}, nil
}

// Forecast predicts every machine's next-day net flow and runs the
// rebalancing optimizer under the current thresholds. Predictor failure is
// fatal to the call.
func (s *Service) Forecast() (model.Forecast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.engine.History()
	if len(h) == 0 {
		return model.Forecast{}, simulation.ErrNotReady
	}
	forDate := h.MaxDate().AddDate(0, 0, 1)
	rows := buildFeatureRows(h, forDate, s.engine.PendingEvent() == simulation.EventFestival)

	flows, err := s.pred.Predict(rows)
	if err != nil {
		return model.Forecast{}, fmt.Errorf("predict: %w", err)
	}

	preds := make([]optimizer.Prediction, len(rows))
	for i, r := range rows {
		preds[i] = optimizer.Prediction{MachineID: r.MachineID, Flow: flows[i]}
	}
	report := optimizer.Optimize(preds, s.config.MinCashThreshold, s.config.MaxCashThreshold)

	fc := model.Forecast{
		ForDate:     forDate,
		GeneratedAt: time.Now(),
		Report:      report,
		Economics:   s.economics(report),
	}
	s.recordForecast(fc)
	return fc, nil
}

// AdvanceDay moves the simulation clock forward one day.
func (s *Service) AdvanceDay() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.engine.PendingEvent()
	date, err := s.engine.AdvanceDay()
	if err != nil {
		return time.Time{}, err
	}

	var fleetFlow int64
	for _, o := range s.engine.History() {
		if o.Date.Equal(date) {
			fleetFlow += o.NetCashFlow()
		}
	}
	if err := s.rec.RecordAdvance(&recorder.AdvanceEvent{
		Date:         date.Format(dateLayout),
		Event:        string(pending),
		FleetNetFlow: fleetFlow,
	}); err != nil {
		log.Printf("[ERROR] record advance: %v", err)
	}
	return date, nil
}

// Reset regenerates the whole history.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Reset(); err != nil {
		return err
	}
	h := s.engine.History()
	machines := s.engine.FleetSize()
	if err := s.rec.RecordReset(&recorder.ResetEvent{
		Days:     len(h) / machines,
		Machines: machines,
	}); err != nil {
		log.Printf("[ERROR] record reset: %v", err)
	}
	return nil
}

// InjectEvent schedules a shock for the next day advance.
func (s *Service) InjectEvent(kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SetNextEvent(simulation.EventKind(kind))
}

// MachineDetail returns the drill-down view for one machine, or
// ErrMachineNotFound for an unknown ID.
func (s *Service) MachineDetail(machineID int) (model.MachineDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.engine.History()
	rows := h.ForMachine(machineID)
	if len(rows) == 0 {
		return model.MachineDetail{}, fmt.Errorf("machine %d: %w", machineID, ErrMachineNotFound)
	}

	latest := rows[len(rows)-1]
	cutoff := h.MaxDate().AddDate(0, 0, -30)
	var last30 []model.Observation
	for _, o := range rows {
		if o.Date.After(cutoff) {
			last30 = append(last30, o)
		}
	}

	var flowSum, volume, revenue, cost int64
	txns := make([]model.TransactionDay, 0, len(last30))
	fins := make([]model.FinancialDay, 0, len(last30))
	for _, o := range last30 {
		flowSum += o.NetCashFlow()
		volume += o.Withdrawals + o.Deposits
		revenue += o.Revenue
		cost += o.Cost
		txns = append(txns, model.TransactionDay{
			Date:        o.Date.Format(dateLayout),
			Withdrawals: o.Withdrawals,
			Deposits:    o.Deposits,
			NetFlow:     o.NetCashFlow(),
		})
		fins = append(fins, model.FinancialDay{
			Date:    o.Date.Format(dateLayout),
			Revenue: o.Revenue,
			Cost:    o.Cost,
		})
	}
	var avgFlow int64
	if len(last30) > 0 {
		avgFlow = flowSum / int64(len(last30))
	}
	var roi float64
	if cost > 0 {
		roi = math.Round(float64(revenue-cost)/float64(cost)*1000) / 10
	}

	var refills []model.RefillEvent
	for _, o := range rows {
		if o.NetCashFlow() > refillDetectionFlow {
			refills = append(refills, model.RefillEvent{
				Date:   o.Date.Format(dateLayout),
				Amount: o.NetCashFlow(),
				Type:   "Refill",
			})
		}
	}
	if len(refills) > 5 {
		refills = refills[len(refills)-5:]
	}

	status := "Critical"
	switch {
	case latest.Health > 80:
		status = "OK"
	case latest.Health > 50:
		status = "Caution"
	}

	return model.MachineDetail{
		MachineID:      machineID,
		LocationType:   latest.LocationType,
		Status:         status,
		Health:         math.Round(latest.Health*10) / 10,
		CurrentNetFlow: latest.NetCashFlow(),
		AvgDailyFlow:   avgFlow,
		Total30dVolume: volume,
		TotalRevenue:   revenue,
		TotalCost:      cost,
		ROI:            roi,
		DenomMix: []model.DenominationSlice{
			{Name: "100", Value: latest.W100 + latest.D100},
			{Name: "500", Value: latest.W500 + latest.D500},
			{Name: "2000", Value: latest.W2000 + latest.D2000},
		},
		TransactionHistory: txns,
		FinancialHistory:   fins,
		RefillHistory:      refills,
	}, nil
}

// buildFeatureRows assembles the predictor input: one row per machine with
// calendar flags for the target date. Machines with fewer than 7 prior days
// get zero-valued lag/rolling features instead of blocking the others.
func buildFeatureRows(h model.History, date time.Time, festival bool) []model.FeatureRow {
	var out []model.FeatureRow
	for _, machineID := range h.Machines() {
		rows := h.ForMachine(machineID)
		var lag7, roll3 float64
		if len(rows) >= 7 {
			last7 := rows[len(rows)-7:]
			lag7 = float64(last7[0].NetCashFlow())
			var sum int64
			for _, o := range last7[4:] {
				sum += o.NetCashFlow()
			}
			roll3 = float64(sum) / 3
		}
		out = append(out, model.FeatureRow{
			MachineID:       machineID,
			IsWeekend:       model.IsWeekend(date),
			IsPayday:        model.IsPayday(date),
			IsFestival:      festival,
			NetFlowLag7:     lag7,
			NetFlowRolling3: roll3,
		})
	}
	return out
}

// economics estimates the money impact of a schedule: each inter-machine
// transfer avoids one vault trip, while queued surplus cash carries a daily
// interest cost.
func (s *Service) economics(report model.ForecastReport) model.ForecastEconomics {
	var trips int
	for _, a := range report.RebalancingSchedule {
		if a.Action == model.ActionInterATMTransfer {
			trips++
		}
	}
	var surplusTotal int64
	for _, st := range report.NetworkStatus {
		if st.Status == model.ClassSurplus {
			surplusTotal += st.NetFlow
		}
	}
	return model.ForecastEconomics{
		TripsSaved:       trips,
		EstimatedSavings: int64(trips) * s.config.CostPerTrip,
		SurplusCarryCost: float64(surplusTotal) * s.config.InterestRateDaily,
	}
}

func (s *Service) recordForecast(fc model.Forecast) {
	evt := &recorder.ForecastEvent{
		ForDate:          fc.ForDate.Format(dateLayout),
		EstimatedSavings: fc.Economics.EstimatedSavings,
	}
	for _, st := range fc.Report.NetworkStatus {
		switch st.Status {
		case model.ClassSurplus:
			evt.SurplusCount++
		case model.ClassDeficit:
			evt.DeficitCount++
		default:
			evt.StableCount++
		}
	}
	for _, a := range fc.Report.RebalancingSchedule {
		if a.Action == model.ActionInterATMTransfer {
			evt.TransferCount++
		} else {
			evt.RefillCount++
		}
	}
	if err := s.rec.RecordForecast(evt, fc.Report.RebalancingSchedule); err != nil {
		log.Printf("[ERROR] record forecast: %v", err)
	}
}
