package model

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsPayday(t *testing.T) {
	tests := []struct {
		date time.Time
		want bool
	}{
		{day(2024, time.January, 1), true},
		{day(2024, time.January, 5), true},
		{day(2024, time.January, 6), false},
		{day(2024, time.January, 15), false},
		{day(2024, time.January, 29), false},
		{day(2024, time.January, 30), true},
		{day(2024, time.January, 31), true},
		{day(2024, time.February, 29), false},
	}
	for _, tt := range tests {
		if got := IsPayday(tt.date); got != tt.want {
			t.Errorf("IsPayday(%s) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	// 2024-01-01 is a Monday.
	for d := 1; d <= 7; d++ {
		date := day(2024, time.January, d)
		want := d == 6 || d == 7
		if got := IsWeekend(date); got != want {
			t.Errorf("IsWeekend(%s) = %v, want %v", date.Format("2006-01-02"), got, want)
		}
	}
}

func TestLocationFor(t *testing.T) {
	for id := 0; id < 6; id++ {
		want := LocationMarket
		if id%2 == 1 {
			want = LocationResidential
		}
		if got := LocationFor(id); got != want {
			t.Errorf("LocationFor(%d) = %s, want %s", id, got, want)
		}
	}
}

func TestNetCashFlow(t *testing.T) {
	o := Observation{Withdrawals: 500000, Deposits: 300000}
	if got := o.NetCashFlow(); got != -200000 {
		t.Errorf("net flow = %d, want -200000", got)
	}
}

func TestThresholdsFor(t *testing.T) {
	tests := []struct {
		risk    RiskTolerance
		wantMin int64
		wantMax int64
	}{
		{RiskAggressive, 50000, 300000},
		{RiskModerate, 100000, 500000},
		{RiskConservative, 200000, 800000},
		{RiskTolerance("unknown"), 100000, 500000},
	}
	for _, tt := range tests {
		min, max := ThresholdsFor(tt.risk)
		if min != tt.wantMin || max != tt.wantMax {
			t.Errorf("ThresholdsFor(%s) = %d/%d, want %d/%d",
				tt.risk, min, max, tt.wantMin, tt.wantMax)
		}
	}
}

func TestHistoryHelpers(t *testing.T) {
	h := History{
		{Date: day(2024, time.January, 2), MachineID: 1, Health: 97},
		{Date: day(2024, time.January, 1), MachineID: 1, Health: 99},
		{Date: day(2024, time.January, 1), MachineID: 0, Health: 96},
		{Date: day(2024, time.January, 2), MachineID: 0, Health: 95},
	}

	if got := h.MaxDate(); !got.Equal(day(2024, time.January, 2)) {
		t.Errorf("MaxDate = %s", got)
	}
	if got := h.Machines(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Machines = %v, want [0 1]", got)
	}

	rows := h.ForMachine(1)
	if len(rows) != 2 {
		t.Fatalf("ForMachine(1) = %d rows", len(rows))
	}
	if rows[0].Date.After(rows[1].Date) {
		t.Error("ForMachine rows not date ordered")
	}

	if got := h.LatestHealth(0); got != 95 {
		t.Errorf("LatestHealth(0) = %v, want 95", got)
	}
	if got := h.LatestHealth(7); got != 100 {
		t.Errorf("LatestHealth(unknown) = %v, want default 100", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	var h History
	if !h.MaxDate().IsZero() {
		t.Error("MaxDate of empty history should be zero")
	}
	if got := h.Machines(); len(got) != 0 {
		t.Errorf("Machines = %v", got)
	}
}
