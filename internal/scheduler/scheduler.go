package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"CashCycle/internal/model"
	"CashCycle/internal/notifier"
	"CashCycle/internal/service"
)

// Scheduler drives the simulation clock on a cron schedule and relays
// forecast alerts to the ops channel.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *service.Service
	Notifier *notifier.TelegramNotifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *service.Service, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// Register installs the auto-advance task. An empty spec disables it.
func (s *Scheduler) Register(autoAdvanceCron string) error {
	if autoAdvanceCron == "" {
		log.Println("[INFO] auto-advance disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(autoAdvanceCron, s.advanceTask); err != nil {
		return fmt.Errorf("register auto-advance task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAdvanceNow executes the advance task immediately (manual trigger).
func (s *Scheduler) RunAdvanceNow() {
	s.advanceTask()
}

func (s *Scheduler) advanceTask() {
	log.Println("[INFO] running scheduled day advance")
	date, err := s.Service.AdvanceDay()
	if err != nil {
		log.Printf("[ERROR] scheduled advance: %v", err)
		s.trySend(fmt.Sprintf("Scheduled day advance failed: %v", err))
		return
	}

	fc, err := s.Service.Forecast()
	if err != nil {
		log.Printf("[ERROR] scheduled forecast: %v", err)
		s.trySend(fmt.Sprintf("Forecast for %s failed: %v", date.Format("2006-01-02"), err))
		return
	}

	// Only page the channel when the fleet needs cash moved.
	if needsAttention(&fc) {
		s.trySend(notifier.FormatForecast(&fc))
	}
}

// needsAttention reports whether the forecast contains deficits or refills.
func needsAttention(fc *model.Forecast) bool {
	for _, st := range fc.Report.NetworkStatus {
		if st.Status == model.ClassDeficit {
			return true
		}
	}
	for _, a := range fc.Report.RebalancingSchedule {
		if a.Action == model.ActionVaultRefill {
			return true
		}
	}
	return false
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		status, err := s.Service.Status()
		if err != nil {
			return fmt.Sprintf("status failed: %v", err)
		}
		return notifier.FormatFleetStatus(&status)
	case "/forecast":
		fc, err := s.Service.Forecast()
		if err != nil {
			return fmt.Sprintf("forecast failed: %v", err)
		}
		return notifier.FormatForecast(&fc)
	case "/advance":
		date, err := s.Service.AdvanceDay()
		if err != nil {
			return fmt.Sprintf("advance failed: %v", err)
		}
		return fmt.Sprintf("Simulation advanced to %s", date.Format("2006-01-02"))
	default:
		return "Commands:\n/status - fleet summary\n/forecast - next-day forecast\n/advance - advance one day"
	}
}

func (s *Scheduler) trySend(text string) {
	if !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
