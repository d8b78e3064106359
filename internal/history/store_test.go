package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"CashCycle/internal/generator"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm_history.csv")
	store := NewStore(path)

	h := generator.New(42).Generate(30, 5)
	if err := store.Save(h); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(h) {
		t.Fatalf("row count: got %d, want %d", len(loaded), len(h))
	}
	for i := range h {
		want, got := h[i], loaded[i]
		// Health goes through fixed-precision formatting; compare to the
		// stored precision.
		if diff := want.Health - got.Health; diff < -1e-6 || diff > 1e-6 {
			t.Fatalf("row %d: health %.8f vs %.8f", i, want.Health, got.Health)
		}
		want.Health, got.Health = 0, 0
		if want != got {
			t.Fatalf("row %d differs after round trip:\nsaved:  %+v\nloaded: %+v", i, want, got)
		}
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.csv"))
	if _, err := store.Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"garbage", "not,a,history\n1,2,3\n"},
		{"bad date", "date,atm_id,location_type,is_weekend,is_payday,is_festival,withdrawals,deposits,w_100,w_500,w_2000,d_100,d_500,d_2000,health,revenue,cost,net_cash_flow,net_flow_lag_7,net_flow_rolling_3\n" +
			"yesterday,0,Market,false,false,false,1,2,0,0,0,0,0,0,99.5,10,500,1,,\n"},
		{"bad amount", "date,atm_id,location_type,is_weekend,is_payday,is_festival,withdrawals,deposits,w_100,w_500,w_2000,d_100,d_500,d_2000,health,revenue,cost,net_cash_flow,net_flow_lag_7,net_flow_rolling_3\n" +
			"2024-01-01,0,Market,false,false,false,lots,2,0,0,0,0,0,0,99.5,10,500,1,,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "atm_history.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := NewStore(path).Load(); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestStore_DerivedColumnsBlankForEarlyDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm_history.csv")
	store := NewStore(path)
	h := generator.New(1).Generate(10, 1)
	if err := store.Save(h); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	// header + 10 rows
	if len(lines) != 11 {
		t.Fatalf("expected 11 lines, got %d", len(lines))
	}
	for i, line := range lines[1:] {
		hasDerived := !strings.HasSuffix(line, ",,")
		wantDerived := i >= 7
		if hasDerived != wantDerived {
			t.Errorf("row %d: derived columns present=%v, want %v", i, hasDerived, wantDerived)
		}
	}
}
