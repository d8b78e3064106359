package features

import (
	"CashCycle/internal/model"
)

// lagDays is the seasonality lag: net flow on the same weekday last week.
// It also fixes how many leading rows per machine lack features.
const lagDays = 7

// rollingWindow is the trailing mean window, inclusive of the current day.
const rollingWindow = 3

// Derive computes the lag-7 and rolling-3 net-flow features for every machine
// and drops the rows where either is undefined (the first 7 days of each
// machine's series). Output is grouped by machine, date ascending.
//
// Derive must always be fed the full raw history. Feeding it its own output
// compounds the 7-day trim, because the lag is relative to machine-local row
// positions in whatever table it is given.
func Derive(h model.History) []model.DerivedRow {
	var out []model.DerivedRow
	for _, machineID := range h.Machines() {
		rows := h.ForMachine(machineID)
		net := make([]int64, len(rows))
		for i, o := range rows {
			net[i] = o.NetCashFlow()
		}
		for i := lagDays; i < len(rows); i++ {
			var sum int64
			for j := i - rollingWindow + 1; j <= i; j++ {
				sum += net[j]
			}
			out = append(out, model.DerivedRow{
				Observation:     rows[i],
				NetFlowLag7:     net[i-lagDays],
				NetFlowRolling3: float64(sum) / rollingWindow,
			})
		}
	}
	return out
}
