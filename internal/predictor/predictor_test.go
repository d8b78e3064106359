package predictor

import (
	"errors"
	"testing"

	"CashCycle/internal/model"
)

func TestBaseline_Blend(t *testing.T) {
	tests := []struct {
		name string
		row  model.FeatureRow
		want float64
	}{
		{
			name: "trend only",
			row:  model.FeatureRow{NetFlowRolling3: 100000, NetFlowLag7: 50000},
			want: 0.6*100000 + 0.4*50000,
		},
		{
			name: "payday drag",
			row:  model.FeatureRow{NetFlowRolling3: 100000, NetFlowLag7: 100000, IsPayday: true},
			want: 100000 - 140000,
		},
		{
			name: "weekend drag",
			row:  model.FeatureRow{IsWeekend: true},
			want: -60000,
		},
		{
			name: "all flags stack",
			row:  model.FeatureRow{IsPayday: true, IsWeekend: true, IsFestival: true},
			want: -140000 - 60000 - 250000,
		},
		{
			name: "negative trend passes through",
			row:  model.FeatureRow{NetFlowRolling3: -200000, NetFlowLag7: -100000},
			want: 0.6*-200000 + 0.4*-100000,
		},
	}

	b := NewBaseline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flows, err := b.Predict([]model.FeatureRow{tt.row})
			if err != nil {
				t.Fatalf("predict: %v", err)
			}
			if len(flows) != 1 {
				t.Fatalf("flows = %v, want one", flows)
			}
			if flows[0] != tt.want {
				t.Errorf("flow = %v, want %v", flows[0], tt.want)
			}
		})
	}
}

func TestBaseline_OutputPerRow(t *testing.T) {
	rows := make([]model.FeatureRow, 5)
	for i := range rows {
		rows[i].MachineID = i
	}
	flows, err := NewBaseline().Predict(rows)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(flows) != len(rows) {
		t.Fatalf("flows = %d, want %d", len(flows), len(rows))
	}
}

func TestStub(t *testing.T) {
	rows := make([]model.FeatureRow, 2)

	s := &Stub{Flows: []float64{1, 2}}
	flows, err := s.Predict(rows)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if flows[0] != 1 || flows[1] != 2 {
		t.Errorf("flows = %v", flows)
	}

	wantErr := errors.New("boom")
	s = &Stub{Err: wantErr}
	if _, err := s.Predict(rows); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}

	s = &Stub{Flows: []float64{1}}
	if _, err := s.Predict(rows); err == nil {
		t.Error("expected length mismatch error")
	}
}
