package notifier

import (
	"fmt"
	"strings"

	"CashCycle/internal/model"
)

// FormatForecast renders a forecast and its rebalancing schedule as a
// plain-text ops alert.
func FormatForecast(fc *model.Forecast) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CashCycle forecast | %s\n\n", fc.ForDate.Format("2006-01-02")))

	b.WriteString("Network status:\n")
	for _, st := range fc.Report.NetworkStatus {
		b.WriteString(fmt.Sprintf("  ATM %d: net flow %d -> %s\n", st.MachineID, st.NetFlow, st.Status))
	}

	if len(fc.Report.RebalancingSchedule) == 0 {
		b.WriteString("\nNo critical deficits. Network is stable.\n")
	} else {
		b.WriteString("\nRebalancing schedule:\n")
		for _, a := range fc.Report.RebalancingSchedule {
			switch a.Action {
			case model.ActionInterATMTransfer:
				b.WriteString(fmt.Sprintf("  transfer %d from %s -> ATM %d\n", a.Amount, a.Source, a.Destination))
			case model.ActionVaultRefill:
				b.WriteString(fmt.Sprintf("  vault truck to ATM %d, refill %d\n", a.Destination, a.Amount))
			}
		}
	}

	if fc.Economics.TripsSaved > 0 {
		b.WriteString(fmt.Sprintf("\nTrips saved: %d (est. savings %d)\n",
			fc.Economics.TripsSaved, fc.Economics.EstimatedSavings))
	}
	return b.String()
}

// FormatFleetStatus renders the latest fleet summary for display.
func FormatFleetStatus(status *model.NetworkStatus) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("CashCycle fleet status | %s\n\n", status.Date))
	b.WriteString(fmt.Sprintf("Total net cash flow: %d\n", status.TotalCashFlow))
	b.WriteString(fmt.Sprintf("Risk profile: %s (min %d / max %d)\n",
		status.Config.RiskTolerance, status.Config.MinCashThreshold, status.Config.MaxCashThreshold))
	if n := len(status.ChartData); n > 0 {
		first, last := status.ChartData[0], status.ChartData[n-1]
		b.WriteString(fmt.Sprintf("30-day trend: %s (%d) -> %s (%d)\n",
			first.Date, first.NetFlow, last.Date, last.NetFlow))
	}
	return b.String()
}
