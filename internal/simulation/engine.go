package simulation

import (
	"errors"
	"log"
	"time"

	"CashCycle/internal/features"
	"CashCycle/internal/generator"
	"CashCycle/internal/history"
	"CashCycle/internal/model"
)

// EventKind is a shock scheduled for the next simulated day.
type EventKind string

const (
	EventNone     EventKind = ""
	EventFestival EventKind = "FESTIVAL"
	EventStorm    EventKind = "STORM"
)

// State of the engine lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

const (
	initialDays = 365
	fleetSize   = 5

	// stepFestivalMultiplier is the withdrawal spike used by AdvanceDay.
	// An injected festival hits harder than the organic ones in the
	// initial history, which use generator.FestivalMultiplier.
	stepFestivalMultiplier = 2.5
)

// ErrNotReady is returned when an operation requires a loaded history.
var ErrNotReady = errors.New("simulation engine not ready")

// Engine owns the persisted observation history and the simulation clock.
// It keeps the FULL raw history and recomputes the derived feature view from
// it after every mutation; the derived view is never fed back into derivation.
//
// Not safe for concurrent use; callers serialize access.
type Engine struct {
	gen   *generator.Generator
	store *history.Store

	state     State
	history   model.History
	derived   []model.DerivedRow
	nextEvent EventKind
}

// NewEngine creates an engine in the UNINITIALIZED state.
func NewEngine(gen *generator.Generator, store *history.Store) *Engine {
	return &Engine{gen: gen, store: store}
}

// LoadOrInit loads the persisted history, or regenerates it when the file is
// missing or unparsable. Load failures are an accepted data-loss recovery,
// logged but never surfaced.
func (e *Engine) LoadOrInit() error {
	h, err := e.store.Load()
	if err != nil {
		log.Printf("[WARN] load history failed, regenerating: %v", err)
		return e.Reset()
	}
	log.Printf("[INFO] loaded simulation history: %d rows, latest %s",
		len(h), h.MaxDate().Format("2006-01-02"))
	e.history = h
	e.derived = features.Derive(h)
	e.state = StateReady
	return nil
}

// Reset replaces the history wholesale with a fresh 365-day fleet and
// persists it.
func (e *Engine) Reset() error {
	log.Println("[INFO] initializing fresh simulation")
	e.history = e.gen.Generate(initialDays, fleetSize)
	e.derived = features.Derive(e.history)
	e.nextEvent = EventNone
	if err := e.store.Save(e.history); err != nil {
		return err
	}
	e.state = StateReady
	return nil
}

// SetNextEvent schedules a shock for the next AdvanceDay call, overwriting
// any unconsumed event. Unrecognized kinds are stored as-is and simply have
// no effect when consumed.
func (e *Engine) SetNextEvent(kind EventKind) error {
	if e.state != StateReady {
		return ErrNotReady
	}
	log.Printf("[INFO] event injected: %s", kind)
	e.nextEvent = kind
	return nil
}

// PendingEvent returns the unconsumed scheduled event, if any.
func (e *Engine) PendingEvent() EventKind { return e.nextEvent }

// AdvanceDay generates one new observation per machine for the day after the
// latest stored date, applying any pending event exactly once, then re-derives
// features over the whole raw series and persists. Returns the new date.
func (e *Engine) AdvanceDay() (time.Time, error) {
	if e.state != StateReady {
		return time.Time{}, ErrNotReady
	}

	newDate := e.history.MaxDate().AddDate(0, 0, 1)
	log.Printf("[INFO] advancing simulation to %s", newDate.Format("2006-01-02"))

	for machineID := 0; machineID < fleetSize; machineID++ {
		obs := e.gen.Draw(generator.DayParams{
			Date:               newDate,
			MachineID:          machineID,
			FestivalMultiplier: stepFestivalMultiplier,
			ForceFestival:      e.nextEvent == EventFestival,
			Storm:              e.nextEvent == EventStorm,
		})
		// Health follows each machine's own series instead of the
		// generator's fresh per-day draw.
		obs.Health = e.gen.HealthStep(e.history.LatestHealth(machineID))
		obs.Cost = generator.OperatingCost(obs.Health)
		e.history = append(e.history, obs)
	}

	e.derived = features.Derive(e.history)
	if err := e.store.Save(e.history); err != nil {
		return time.Time{}, err
	}

	// Consumed regardless of whether any branch read it.
	e.nextEvent = EventNone
	return newDate, nil
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// History returns the full raw observation log.
func (e *Engine) History() model.History { return e.history }

// Derived returns the feature view: rows with lag/rolling features, first
// 7 days per machine excluded.
func (e *Engine) Derived() []model.DerivedRow { return e.derived }

// FleetSize returns the number of simulated machines.
func (e *Engine) FleetSize() int { return fleetSize }
