package optimizer

import (
	"strconv"

	"github.com/google/uuid"

	"CashCycle/internal/model"
)

// surplusFloor is the absolute hysteresis floor: a surplus machine whose
// remaining amount drops below it is considered drained and leaves the queue.
// Independent of the configured thresholds.
const surplusFloor = 50000

// Prediction pairs a machine with its predicted net cash flow.
type Prediction struct {
	MachineID int
	Flow      float64
}

type queueEntry struct {
	machineID int
	amount    int64
}

// Optimize classifies every machine against the thresholds and computes a
// greedy transfer schedule. Pure function, no hidden state.
//
// The surplus test compares the raw flow against maxThreshold while the
// deficit test compares against -minThreshold; the two cutoffs are
// independent, not a symmetric band.
//
// Matching is a single pass over the deficits in discovery order, always
// drawing from the oldest queued surplus. It never revisits a processed
// deficit, so it is O(n) and deliberately not a globally optimal matching.
func Optimize(predictions []Prediction, minThreshold, maxThreshold int64) model.ForecastReport {
	report := model.ForecastReport{
		NetworkStatus:       make([]model.MachineStatus, 0, len(predictions)),
		RebalancingSchedule: []model.TransferAction{},
	}

	var surplus, deficit []queueEntry
	for _, p := range predictions {
		status := model.ClassStable
		switch {
		case p.Flow > float64(maxThreshold):
			status = model.ClassSurplus
			surplus = append(surplus, queueEntry{p.MachineID, int64(p.Flow)})
		case p.Flow < -float64(minThreshold):
			status = model.ClassDeficit
			deficit = append(deficit, queueEntry{p.MachineID, int64(-p.Flow)})
		}
		report.NetworkStatus = append(report.NetworkStatus, model.MachineStatus{
			MachineID: p.MachineID,
			NetFlow:   int64(p.Flow),
			Status:    status,
		})
	}

	for i := range deficit {
		if len(surplus) > 0 {
			head := &surplus[0]
			amount := head.amount
			if deficit[i].amount < amount {
				amount = deficit[i].amount
			}
			report.RebalancingSchedule = append(report.RebalancingSchedule, model.TransferAction{
				ID:          uuid.New().String(),
				Action:      model.ActionInterATMTransfer,
				Source:      machineLabel(head.machineID),
				Destination: deficit[i].machineID,
				Amount:      amount,
				Notes:       "Saved 1 vault trip",
			})
			head.amount -= amount
			deficit[i].amount -= amount
			if head.amount < surplusFloor {
				surplus = surplus[1:]
			}
		} else {
			report.RebalancingSchedule = append(report.RebalancingSchedule, model.TransferAction{
				ID:          uuid.New().String(),
				Action:      model.ActionVaultRefill,
				Source:      model.VaultSource,
				Destination: deficit[i].machineID,
				Amount:      deficit[i].amount,
				Notes:       "Standard refill",
			})
		}
	}

	return report
}

// Transfer sources share a column with CENTRAL_VAULT, so machine IDs are
// rendered as strings.
func machineLabel(machineID int) string {
	return "ATM_" + strconv.Itoa(machineID)
}
