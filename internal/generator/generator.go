package generator

import (
	"math"
	"math/rand"
	"time"

	"CashCycle/internal/model"
)

// StartDate is the first day of any freshly generated history.
var StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Demand distribution and effect sizes for the synthetic fleet.
const (
	withdrawMean = 500000
	withdrawSD   = 50000
	depositMean  = 300000
	depositSD    = 30000

	paydayMultiplier  = 1.4
	weekendMultiplier = 1.2

	marketDepositMultiplier       = 1.6
	marketWithdrawMultiplier      = 0.8
	residentialDepositMultiplier  = 0.3
	residentialWithdrawMultiplier = 1.2

	festivalProbability = 0.02
	// FestivalMultiplier is the demand spike applied during initial history
	// generation. The simulation step uses its own, larger multiplier.
	FestivalMultiplier = 1.8

	stormMultiplier = 0.2 // 80% demand collapse on both sides
)

// Generator draws synthetic per-machine daily observations from a seeded
// source. Deterministic for a fixed seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator seeded for reproducible histories.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// DayParams controls a single day's draw.
type DayParams struct {
	Date      time.Time
	MachineID int
	// FestivalMultiplier is the withdrawal spike applied when a festival
	// occurs on this day.
	FestivalMultiplier float64
	// ForceFestival marks the day as a festival instead of the random draw.
	ForceFestival bool
	// Storm collapses both withdrawals and deposits by 80%.
	Storm bool
}

// Draw produces one machine's observation for one day. Amounts are drawn from
// normal distributions and adjusted by a fixed multiplier chain: payday, then
// weekend, then location, then festival, then storm. Distributions are not
// truncated; rare negative draws are valid observations.
func (g *Generator) Draw(p DayParams) model.Observation {
	withdraw := g.rng.NormFloat64()*withdrawSD + withdrawMean
	deposit := g.rng.NormFloat64()*depositSD + depositMean

	isPayday := model.IsPayday(p.Date)
	if isPayday {
		withdraw *= paydayMultiplier
	}

	isWeekend := model.IsWeekend(p.Date)
	if isWeekend {
		withdraw *= weekendMultiplier
	}

	location := model.LocationFor(p.MachineID)
	if location == model.LocationMarket {
		deposit *= marketDepositMultiplier
		withdraw *= marketWithdrawMultiplier
	} else {
		deposit *= residentialDepositMultiplier
		withdraw *= residentialWithdrawMultiplier
	}

	isFestival := p.ForceFestival
	if !p.ForceFestival {
		isFestival = g.rng.Float64() < festivalProbability
	}
	if isFestival {
		withdraw *= p.FestivalMultiplier
	}

	if p.Storm {
		withdraw *= stormMultiplier
		deposit *= stormMultiplier
	}

	withdrawVal := int64(withdraw)
	depositVal := int64(deposit)
	health := 100 - g.rng.Float64()*5

	obs := model.Observation{
		Date:         p.Date,
		MachineID:    p.MachineID,
		LocationType: location,
		IsWeekend:    isWeekend,
		IsPayday:     isPayday,
		IsFestival:   isFestival,
		Withdrawals:  withdrawVal,
		Deposits:     depositVal,
		Health:       health,
		Revenue:      Revenue(withdrawVal, depositVal),
		Cost:         OperatingCost(health),
	}
	obs.W100, obs.W500, obs.W2000 = splitWithdrawals(withdrawVal)
	obs.D100, obs.D500, obs.D2000 = splitDeposits(depositVal)
	return obs
}

// Generate produces nDays of observations for nMachines starting at StartDate,
// using the initial-history festival multiplier.
func (g *Generator) Generate(nDays, nMachines int) model.History {
	h := make(model.History, 0, nDays*nMachines)
	for machineID := 0; machineID < nMachines; machineID++ {
		for day := 0; day < nDays; day++ {
			h = append(h, g.Draw(DayParams{
				Date:               StartDate.AddDate(0, 0, day),
				MachineID:          machineID,
				FestivalMultiplier: FestivalMultiplier,
			}))
		}
	}
	return h
}

// HealthStep advances a machine's health one day: a slow random-walk decay
// floored at 40.
func (g *Generator) HealthStep(prior float64) float64 {
	return math.Max(40, prior-g.rng.Float64()*0.5)
}

// Revenue is the fee income for one day: 25 per 5000 withdrawn plus 10 per
// 5000 deposited.
func Revenue(withdrawals, deposits int64) int64 {
	return (withdrawals/5000)*25 + (deposits/5000)*10
}

// OperatingCost is the daily cost: a fixed base plus wear proportional to
// lost health.
func OperatingCost(health float64) int64 {
	return 500 + int64((100-health)*50)
}

// Withdrawals skew toward 500s; 2000s are rare, 100s cover change.
// Deposits carry a different mix. Bucket remainders are discarded.
func splitWithdrawals(amount int64) (n100, n500, n2000 int64) {
	n100 = int64(float64(amount)*0.3) / 100
	n500 = int64(float64(amount)*0.6) / 500
	n2000 = int64(float64(amount)*0.1) / 2000
	return n100, n500, n2000
}

func splitDeposits(amount int64) (n100, n500, n2000 int64) {
	n100 = int64(float64(amount)*0.2) / 100
	n500 = int64(float64(amount)*0.75) / 500
	n2000 = int64(float64(amount)*0.05) / 2000
	return n100, n500, n2000
}
