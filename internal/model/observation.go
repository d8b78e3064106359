package model

import (
	"sort"
	"time"
)

// LocationType classifies the area a cash machine serves.
type LocationType string

const (
	LocationMarket      LocationType = "Market"
	LocationResidential LocationType = "Residential"
)

// LocationFor maps a machine ID to its location type.
// Even IDs sit in market areas (deposit heavy), odd IDs in residential areas.
func LocationFor(machineID int) LocationType {
	if machineID%2 == 0 {
		return LocationMarket
	}
	return LocationResidential
}

// Observation is one machine's recorded activity for one day.
type Observation struct {
	Date         time.Time
	MachineID    int
	LocationType LocationType
	IsWeekend    bool
	IsPayday     bool
	IsFestival   bool
	Withdrawals  int64
	Deposits     int64
	W100         int64 // withdrawn note counts per denomination
	W500         int64
	W2000        int64
	D100         int64 // deposited note counts per denomination
	D500         int64
	D2000        int64
	Health       float64 // mechanical health, 0~100
	Revenue      int64
	Cost         int64
}

// NetCashFlow is deposits minus withdrawals. Positive means the machine is
// accumulating cash, negative means it is being drained. Derived on demand so
// it can never drift from its inputs.
func (o Observation) NetCashFlow() int64 {
	return o.Deposits - o.Withdrawals
}

// DerivedRow is an observation with its lag and rolling net-flow features.
// Rows only exist for days with at least 7 prior same-machine days.
type DerivedRow struct {
	Observation
	NetFlowLag7     int64   // net cash flow exactly 7 days earlier, same machine
	NetFlowRolling3 float64 // trailing 3-day mean including the current day
}

// FeatureRow is the exact input contract of the predictor. Column set and
// order are fixed; the predictor is otherwise a black box.
type FeatureRow struct {
	MachineID       int
	IsWeekend       bool
	IsPayday        bool
	IsFestival      bool
	NetFlowLag7     float64
	NetFlowRolling3 float64
}

// History is the append-only log of observations, grouped by machine and
// ordered by date within each machine.
type History []Observation

// MaxDate returns the most recent observation date, or the zero time for an
// empty history.
func (h History) MaxDate() time.Time {
	var max time.Time
	for _, o := range h {
		if o.Date.After(max) {
			max = o.Date
		}
	}
	return max
}

// Machines returns the distinct machine IDs in ascending order.
func (h History) Machines() []int {
	seen := map[int]bool{}
	var ids []int
	for _, o := range h {
		if !seen[o.MachineID] {
			seen[o.MachineID] = true
			ids = append(ids, o.MachineID)
		}
	}
	sort.Ints(ids)
	return ids
}

// ForMachine returns the observations for one machine in date order.
func (h History) ForMachine(machineID int) []Observation {
	var rows []Observation
	for _, o := range h {
		if o.MachineID == machineID {
			rows = append(rows, o)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// LatestHealth returns the most recent stored health for a machine, or 100
// when the machine has no history yet.
func (h History) LatestHealth(machineID int) float64 {
	health := 100.0
	var latest time.Time
	for _, o := range h {
		if o.MachineID == machineID && !o.Date.Before(latest) {
			latest = o.Date
			health = o.Health
		}
	}
	return health
}
