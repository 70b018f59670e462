package expiry

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/snehaj2206-pixel/medscan/pkg/clock"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
	"github.com/snehaj2206-pixel/medscan/pkg/scheduler"
)

// DateLayout is the stored expiry date form (date picker value).
const DateLayout = "2006-01-02"

// Evaluator derives days-remaining from the stored expiry date and raises the
// expired alert when it goes negative. The alert is raised at most once per
// day, matching the reminder fire guard.
type Evaluator struct {
	mu           sync.Mutex
	clk          clock.Clock
	dispatcher   scheduler.Dispatcher
	med          models.Medicine
	lastAlertDay string
}

// NewEvaluator creates an Evaluator using the system clock.
func NewEvaluator(dispatcher scheduler.Dispatcher, med models.Medicine) *Evaluator {
	return NewEvaluatorWithClock(dispatcher, med, clock.System{})
}

// NewEvaluatorWithClock is NewEvaluator with an explicit clock, for tests.
func NewEvaluatorWithClock(dispatcher scheduler.Dispatcher, med models.Medicine, clk clock.Clock) *Evaluator {
	return &Evaluator{clk: clk, dispatcher: dispatcher, med: med}
}

// Evaluate parses the stored expiry date and returns the days remaining.
// ok is false when no date is set or it cannot be parsed. When the medicine
// has expired it dispatches the expired notification and alarm, once per day.
func (e *Evaluator) Evaluate(expiry string) (days int, expired bool, ok bool) {
	if expiry == "" {
		return 0, false, false
	}

	date, err := time.ParseInLocation(DateLayout, expiry, time.Local)
	if err != nil {
		log.Printf("Invalid expiry date %q: %v", expiry, err)
		return 0, false, false
	}

	days = clock.DaysRemaining(e.clk.Now(), date)
	if days >= 0 {
		return days, false, true
	}

	e.alertExpired(expiry)
	return days, true, true
}

// alertExpired dispatches the expired alert unless it already went out today.
func (e *Evaluator) alertExpired(expiry string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := clock.DayKey(e.clk.Now())
	if e.lastAlertDay == today {
		return
	}
	e.lastAlertDay = today

	e.dispatcher.Notify("Medicine Expired",
		fmt.Sprintf("Your medicine %s expired on %s", e.med.Name, expiry))
	e.dispatcher.StartAlarm(fmt.Sprintf("%s has expired on %s", e.med.Name, expiry))
}
