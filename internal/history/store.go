package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"CashCycle/internal/features"
	"CashCycle/internal/model"
)

const dateLayout = "2006-01-02"

var header = []string{
	"date", "atm_id", "location_type", "is_weekend", "is_payday", "is_festival",
	"withdrawals", "deposits",
	"w_100", "w_500", "w_2000", "d_100", "d_500", "d_2000",
	"health", "revenue", "cost", "net_cash_flow",
	"net_flow_lag_7", "net_flow_rolling_3",
}

// Store persists the observation log as a CSV table, one row per
// (date, machine), raw columns plus derived columns where defined.
type Store struct {
	path string
}

// NewStore creates a store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Save writes the full history. Derived columns are recomputed from the raw
// rows and left blank for days without enough history.
func (s *Store) Save(h model.History) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	type key struct {
		machineID int
		date      time.Time
	}
	derived := map[key]model.DerivedRow{}
	for _, d := range features.Derive(h) {
		derived[key{d.MachineID, d.Date}] = d
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range h {
		lag7, rolling3 := "", ""
		if d, ok := derived[key{o.MachineID, o.Date}]; ok {
			lag7 = strconv.FormatInt(d.NetFlowLag7, 10)
			rolling3 = strconv.FormatFloat(d.NetFlowRolling3, 'f', 6, 64)
		}
		record := []string{
			o.Date.Format(dateLayout),
			strconv.Itoa(o.MachineID),
			string(o.LocationType),
			strconv.FormatBool(o.IsWeekend),
			strconv.FormatBool(o.IsPayday),
			strconv.FormatBool(o.IsFestival),
			strconv.FormatInt(o.Withdrawals, 10),
			strconv.FormatInt(o.Deposits, 10),
			strconv.FormatInt(o.W100, 10),
			strconv.FormatInt(o.W500, 10),
			strconv.FormatInt(o.W2000, 10),
			strconv.FormatInt(o.D100, 10),
			strconv.FormatInt(o.D500, 10),
			strconv.FormatInt(o.D2000, 10),
			strconv.FormatFloat(o.Health, 'f', 6, 64),
			strconv.FormatInt(o.Revenue, 10),
			strconv.FormatInt(o.Cost, 10),
			strconv.FormatInt(o.NetCashFlow(), 10),
			lag7,
			rolling3,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush history file: %w", err)
	}
	return nil
}

// Load reads the persisted history back. Any missing file, malformed row, or
// unparsable cell is an error; callers recover by regenerating.
func (s *Store) Load() (model.History, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("history file is empty")
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, fmt.Errorf("unexpected header column %d: %q", i, records[0][i])
		}
	}

	h := make(model.History, 0, len(records)-1)
	for n, rec := range records[1:] {
		o, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		h = append(h, o)
	}
	return h, nil
}

func parseRow(rec []string) (model.Observation, error) {
	var o model.Observation
	date, err := time.ParseInLocation(dateLayout, rec[0], time.UTC)
	if err != nil {
		return o, fmt.Errorf("parse date: %w", err)
	}
	o.Date = date

	if o.MachineID, err = strconv.Atoi(rec[1]); err != nil {
		return o, fmt.Errorf("parse atm_id: %w", err)
	}
	o.LocationType = model.LocationType(rec[2])
	if o.LocationType != model.LocationMarket && o.LocationType != model.LocationResidential {
		return o, fmt.Errorf("unknown location type %q", rec[2])
	}
	if o.IsWeekend, err = strconv.ParseBool(rec[3]); err != nil {
		return o, fmt.Errorf("parse is_weekend: %w", err)
	}
	if o.IsPayday, err = strconv.ParseBool(rec[4]); err != nil {
		return o, fmt.Errorf("parse is_payday: %w", err)
	}
	if o.IsFestival, err = strconv.ParseBool(rec[5]); err != nil {
		return o, fmt.Errorf("parse is_festival: %w", err)
	}

	ints := []struct {
		dst  *int64
		name string
		col  int
	}{
		{&o.Withdrawals, "withdrawals", 6},
		{&o.Deposits, "deposits", 7},
		{&o.W100, "w_100", 8},
		{&o.W500, "w_500", 9},
		{&o.W2000, "w_2000", 10},
		{&o.D100, "d_100", 11},
		{&o.D500, "d_500", 12},
		{&o.D2000, "d_2000", 13},
		{&o.Revenue, "revenue", 15},
		{&o.Cost, "cost", 16},
	}
	for _, it := range ints {
		if *it.dst, err = strconv.ParseInt(rec[it.col], 10, 64); err != nil {
			return o, fmt.Errorf("parse %s: %w", it.name, err)
		}
	}

	if o.Health, err = strconv.ParseFloat(rec[14], 64); err != nil {
		return o, fmt.Errorf("parse health: %w", err)
	}

	// net_cash_flow and the derived columns are recomputed from the raw
	// columns after load; the stored values only serve external readers.
	if _, err = strconv.ParseInt(rec[17], 10, 64); err != nil {
		return o, fmt.Errorf("parse net_cash_flow: %w", err)
	}
	return o, nil
}
