package model

import "time"

// MachineClass is the optimizer's verdict for one machine.
type MachineClass string

const (
	ClassSurplus MachineClass = "SURPLUS"
	ClassDeficit MachineClass = "DEFICIT"
	ClassStable  MachineClass = "STABLE"
)

// ActionKind identifies how a deficit is covered.
type ActionKind string

const (
	ActionInterATMTransfer ActionKind = "INTER_ATM_TRANSFER"
	ActionVaultRefill      ActionKind = "VAULT_REFILL"
)

// VaultSource is the unlimited external reserve used when no surplus machine
// is available to cover a deficit.
const VaultSource = "CENTRAL_VAULT"

// MachineStatus is one machine's entry in the network status report.
type MachineStatus struct {
	MachineID int          `json:"atm_id"`
	NetFlow   int64        `json:"net_flow"`
	Status    MachineClass `json:"status"`
}

// TransferAction is a single entry in the rebalancing schedule.
type TransferAction struct {
	ID          string     `json:"id"`
	Action      ActionKind `json:"action"`
	Source      string     `json:"source"` // machine ID, or CENTRAL_VAULT for refills
	Destination int        `json:"destination"`
	Amount      int64      `json:"amount"`
	Notes       string     `json:"notes"`
}

// ForecastReport is the optimizer's output: a classification of every machine
// plus the greedy transfer schedule, in deficit discovery order.
type ForecastReport struct {
	NetworkStatus       []MachineStatus  `json:"network_status"`
	RebalancingSchedule []TransferAction `json:"rebalancing_schedule"`
}

// ForecastEconomics estimates the money impact of the schedule: vault trips
// avoided by inter-machine transfers and the daily carry cost of surplus cash.
type ForecastEconomics struct {
	TripsSaved       int     `json:"trips_saved"`
	EstimatedSavings int64   `json:"estimated_savings"`
	SurplusCarryCost float64 `json:"surplus_carry_cost"`
}

// Forecast wraps a report with its economics and the day it covers.
type Forecast struct {
	ForDate     time.Time         `json:"for_date"`
	GeneratedAt time.Time         `json:"generated_at"`
	Report      ForecastReport    `json:"report"`
	Economics   ForecastEconomics `json:"economics"`
}
