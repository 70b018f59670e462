package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/snehaj2206-pixel/medscan/pkg/clock"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

// PollInterval is how often the fallback poller re-checks reminders whose
// precise timer may have been dropped by the host (device sleep, suspended
// process).
const PollInterval = 30 * time.Second

// Registry is the reminder lookup surface the scheduler needs. It references
// reminders by ID only and never owns their state.
type Registry interface {
	Get(id string) (models.Reminder, bool)
	All() []models.Reminder
	MarkFired(id, dayKey string)
}

// Dispatcher receives due-reminder events. Implementations are best-effort
// and must not fail back into the scheduler.
type Dispatcher interface {
	Notify(title, body string)
	StartAlarm(message string)
}

// Timer is the subset of time.Timer the scheduler uses, injectable for tests.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a one-shot timer calling f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Scheduler maps each reminder to at most one pending timer and drives the
// daily fire cycle: Unscheduled -> Armed -> Fired -> Armed, with Armed ->
// Cancelled on removal. Timers are process-lifetime only and are rebuilt from
// the registry on start.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]Timer

	// fireMu serializes the whole fire path. The precise timer callback and
	// the fallback poller run on separate goroutines and can deliver the
	// same reminder together; the day-key check must not interleave with
	// another dispatch.
	fireMu sync.Mutex

	registry   Registry
	dispatcher Dispatcher
	clk        clock.Clock
	afterFunc  AfterFunc
	med        models.Medicine
}

// New creates a Scheduler over the given registry and dispatcher.
func New(registry Registry, dispatcher Dispatcher, med models.Medicine) *Scheduler {
	return NewWithClock(registry, dispatcher, med, clock.System{}, stdAfterFunc)
}

// NewWithClock is New with an explicit clock and timer factory, for tests.
func NewWithClock(registry Registry, dispatcher Dispatcher, med models.Medicine, clk clock.Clock, afterFunc AfterFunc) *Scheduler {
	return &Scheduler{
		timers:     make(map[string]Timer),
		registry:   registry,
		dispatcher: dispatcher,
		clk:        clk,
		afterFunc:  afterFunc,
		med:        med,
	}
}

// Arm schedules a one-shot timer for the reminder's next occurrence,
// replacing any timer already pending for it.
func (s *Scheduler) Arm(rem models.Reminder) {
	delay := clock.UntilNext(s.clk.Now(), rem.Hour, rem.Minute)

	s.mu.Lock()
	if t, ok := s.timers[rem.ID]; ok {
		t.Stop()
	}
	id := rem.ID
	s.timers[id] = s.afterFunc(delay, func() { s.Fire(id) })
	s.mu.Unlock()
}

// ArmAll arms every reminder in the registry. Called on process start to
// rebuild the timer table from persisted state.
func (s *Scheduler) ArmAll() {
	for _, rem := range s.registry.All() {
		s.Arm(rem)
	}
}

// Cancel clears any pending timer for the ID. Safe to call when none exists.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// Fire handles a due reminder. A missing ID is a race with concurrent
// deletion and a no-op; a reminder that already fired today is a no-op too,
// which keeps the precise timer and the fallback poller from double-firing.
// Otherwise it dispatches, records the fire and re-arms for tomorrow.
func (s *Scheduler) Fire(id string) {
	s.fireMu.Lock()
	defer s.fireMu.Unlock()

	rem, ok := s.registry.Get(id)
	if !ok {
		return
	}

	today := clock.DayKey(s.clk.Now())
	if rem.FiredDate == today {
		return
	}

	body := fmt.Sprintf("Time to take %s (%s)", s.med.Name, rem.TimeOfDay())
	s.dispatcher.Notify("Medicine Reminder", body)
	s.dispatcher.StartAlarm(fmt.Sprintf("Time to take %s at %s", s.med.Name, rem.TimeOfDay()))

	s.registry.MarkFired(id, today)

	rem.FiredDate = today
	s.Arm(rem)
}

// CheckDue fires every reminder matching the current hour and minute that
// has not fired today. This is the fallback poll body.
func (s *Scheduler) CheckDue() {
	now := s.clk.Now()
	today := clock.DayKey(now)

	for _, rem := range s.registry.All() {
		if rem.Matches(now.Hour(), now.Minute()) && rem.FiredDate != today {
			s.Fire(rem.ID)
		}
	}
}

// RunPoller re-checks due reminders every PollInterval until ctx is
// cancelled. It compensates for one-shot timers lost across sleep/resume.
func (s *Scheduler) RunPoller(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder poller stopped")
			return
		case <-ticker.C:
			s.CheckDue()
		}
	}
}
