package model

// DailyFlowPoint is one day's fleet-wide net flow, for status charts.
type DailyFlowPoint struct {
	Date    string `json:"date"`
	NetFlow int64  `json:"net_flow"`
}

// NetworkStatus summarises the fleet as of the latest simulated day.
type NetworkStatus struct {
	Date          string           `json:"date"`
	TotalCashFlow int64            `json:"total_cash_flow"`
	ChartData     []DailyFlowPoint `json:"chart_data"`
	Config        RuntimeConfig    `json:"config"`
}

// TransactionDay is one day of a machine's raw activity.
type TransactionDay struct {
	Date        string `json:"date"`
	Withdrawals int64  `json:"withdrawals"`
	Deposits    int64  `json:"deposits"`
	NetFlow     int64  `json:"net_flow"`
}

// FinancialDay is one day of a machine's revenue and cost.
type FinancialDay struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Cost    int64  `json:"cost"`
}

// DenominationSlice is the note count for one denomination in the mix chart.
type DenominationSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// RefillEvent marks a day whose inflow looks like a completed refill.
type RefillEvent struct {
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
}

// MachineDetail is the drill-down view of a single machine: latest state,
// 30-day analytics, and chart-ready histories.
type MachineDetail struct {
	MachineID          int                 `json:"atm_id"`
	LocationType       LocationType        `json:"location_type"`
	Status             string              `json:"status"`
	Health             float64             `json:"health"`
	CurrentNetFlow     int64               `json:"current_net_flow"`
	AvgDailyFlow       int64               `json:"avg_daily_flow"`
	Total30dVolume     int64               `json:"total_30d_volume"`
	TotalRevenue       int64               `json:"total_revenue"`
	TotalCost          int64               `json:"total_cost"`
	ROI                float64             `json:"roi"`
	DenomMix           []DenominationSlice `json:"denom_mix"`
	TransactionHistory []TransactionDay    `json:"transaction_history"`
	FinancialHistory   []FinancialDay      `json:"financial_history"`
	RefillHistory      []RefillEvent       `json:"refill_history"`
}
