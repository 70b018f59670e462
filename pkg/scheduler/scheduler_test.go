package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehaj2206-pixel/medscan/pkg/clock"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

type fakeRegistry struct {
	mu        sync.Mutex
	reminders map[string]models.Reminder
}

func newFakeRegistry(rems ...models.Reminder) *fakeRegistry {
	fr := &fakeRegistry{reminders: make(map[string]models.Reminder)}
	for _, r := range rems {
		fr.reminders[r.ID] = r
	}
	return fr
}

func (fr *fakeRegistry) Get(id string) (models.Reminder, bool) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	r, ok := fr.reminders[id]
	return r, ok
}

func (fr *fakeRegistry) All() []models.Reminder {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	out := make([]models.Reminder, 0, len(fr.reminders))
	for _, r := range fr.reminders {
		out = append(out, r)
	}
	return out
}

func (fr *fakeRegistry) MarkFired(id, dayKey string) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	if r, ok := fr.reminders[id]; ok {
		r.FiredDate = dayKey
		fr.reminders[id] = r
	}
}

func (fr *fakeRegistry) remove(id string) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	delete(fr.reminders, id)
}

type fakeDispatcher struct {
	mu      sync.Mutex
	notify  int
	alarms  int
	lastMsg string
	linger  time.Duration // dwell in Notify to widen dispatch windows
}

func (fd *fakeDispatcher) Notify(title, body string) {
	time.Sleep(fd.linger)
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.notify++
	fd.lastMsg = body
}

func (fd *fakeDispatcher) StartAlarm(message string) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.alarms++
}

func (fd *fakeDispatcher) counts() (int, int) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return fd.notify, fd.alarms
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped
	t.stopped = true
	return active
}

// timerLog records every timer the scheduler starts without running any of
// them, so tests drive firing explicitly.
type timerLog struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (tl *timerLog) afterFunc(d time.Duration, f func()) Timer {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	tl.timers = append(tl.timers, t)
	return t
}

func (tl *timerLog) last() *fakeTimer {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if len(tl.timers) == 0 {
		return nil
	}
	return tl.timers[len(tl.timers)-1]
}

func (tl *timerLog) active() []*fakeTimer {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	out := []*fakeTimer{}
	for _, t := range tl.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

func newTestScheduler(rems ...models.Reminder) (*Scheduler, *fakeClock, *fakeRegistry, *fakeDispatcher, *timerLog) {
	clk := &fakeClock{now: time.Date(2025, 6, 9, 7, 0, 0, 0, time.UTC)}
	reg := newFakeRegistry(rems...)
	disp := &fakeDispatcher{}
	tl := &timerLog{}
	s := NewWithClock(reg, disp, models.DefaultMedicine, clk, tl.afterFunc)
	return s, clk, reg, disp, tl
}

func TestScheduler_ArmComputesDelayToNextOccurrence(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, _, _, _, tl := newTestScheduler(rem)

	// Current time is 07:00, reminder at 08:00 -> one hour out
	s.Arm(rem)

	timer := tl.last()
	require.NotNil(t, timer)
	assert.Equal(t, time.Hour, timer.delay)
}

func TestScheduler_ArmReplacesExistingTimer(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, _, _, _, tl := newTestScheduler(rem)

	s.Arm(rem)
	s.Arm(rem)

	// Only one timer may be pending per reminder
	assert.Len(t, tl.active(), 1)
}

func TestScheduler_FireDispatchesMarksAndRearms(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, reg, disp, tl := newTestScheduler(rem)

	s.Arm(rem)
	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	tl.last().fn()

	notify, alarms := disp.counts()
	assert.Equal(t, 1, notify)
	assert.Equal(t, 1, alarms)
	assert.Contains(t, disp.lastMsg, "Udapa Gold")
	assert.Contains(t, disp.lastMsg, "08:00")

	got, ok := reg.Get("r1")
	require.True(t, ok)
	assert.Equal(t, "2025-06-09", got.FiredDate)

	// Rearmed for tomorrow 08:00
	timer := tl.last()
	assert.Equal(t, 24*time.Hour, timer.delay)
	assert.False(t, timer.stopped)
}

func TestScheduler_FireTwiceSameDayIsNoOp(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, reg, disp, _ := newTestScheduler(rem)

	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	s.Fire("r1")
	s.Fire("r1")

	notify, alarms := disp.counts()
	assert.Equal(t, 1, notify)
	assert.Equal(t, 1, alarms)

	got, _ := reg.Get("r1")
	assert.Equal(t, "2025-06-09", got.FiredDate)
}

func TestScheduler_ConcurrentFireDispatchesOnce(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, _, disp, _ := newTestScheduler(rem)
	disp.linger = 50 * time.Millisecond

	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))

	// The precise timer and the fallback poller can deliver the same
	// reminder on separate goroutines at once.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Fire("r1")
		}()
	}
	wg.Wait()

	notify, alarms := disp.counts()
	assert.Equal(t, 1, notify)
	assert.Equal(t, 1, alarms)
}

func TestScheduler_FireNextDayFiresAgain(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, _, disp, _ := newTestScheduler(rem)

	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	s.Fire("r1")

	clk.Set(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))
	s.Fire("r1")

	notify, _ := disp.counts()
	assert.Equal(t, 2, notify)
}

func TestScheduler_FireUnknownIDIsNoOp(t *testing.T) {
	s, _, _, disp, _ := newTestScheduler()

	s.Fire("missing")

	notify, alarms := disp.counts()
	assert.Zero(t, notify)
	assert.Zero(t, alarms)
}

func TestScheduler_CancelStopsTimer(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, _, _, _, tl := newTestScheduler(rem)

	s.Arm(rem)
	s.Cancel("r1")

	assert.Empty(t, tl.active())

	// Cancel without a pending timer is safe
	s.Cancel("r1")
	s.Cancel("missing")
}

func TestScheduler_RemovedReminderNeverFires(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, reg, disp, tl := newTestScheduler(rem)

	s.Arm(rem)
	timerFn := tl.last().fn

	// Removal flow: cancel first, then drop from the registry
	s.Cancel("r1")
	reg.remove("r1")

	// Even if the old timer callback still runs, nothing happens
	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	timerFn()

	// The poller does not fire it either, clock matching or not
	s.CheckDue()

	notify, _ := disp.counts()
	assert.Zero(t, notify)
}

func TestScheduler_CheckDueFiresMatchingMinute(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, _, disp, _ := newTestScheduler(rem)

	// 07:00 does not match
	s.CheckDue()
	notify, _ := disp.counts()
	assert.Zero(t, notify)

	clk.Set(time.Date(2025, 6, 9, 8, 0, 45, 0, time.UTC))
	s.CheckDue()
	notify, _ = disp.counts()
	assert.Equal(t, 1, notify)
}

func TestScheduler_CheckDueSkipsAlreadyFiredToday(t *testing.T) {
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0, FiredDate: "2025-06-09"}
	s, clk, _, disp, _ := newTestScheduler(rem)

	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	s.CheckDue()

	notify, _ := disp.counts()
	assert.Zero(t, notify)
}

func TestScheduler_ArmAll(t *testing.T) {
	s, _, _, _, tl := newTestScheduler(
		models.Reminder{ID: "r1", Hour: 8, Minute: 0},
		models.Reminder{ID: "r2", Hour: 21, Minute: 30},
	)

	s.ArmAll()

	assert.Len(t, tl.active(), 2)
}

func TestScheduler_FullDayScenario(t *testing.T) {
	// 07:00: add a reminder for 08:00
	rem := models.Reminder{ID: "r1", Hour: 8, Minute: 0}
	s, clk, reg, disp, tl := newTestScheduler(rem)

	s.Arm(rem)
	require.Equal(t, time.Hour, tl.last().delay)

	// 08:00: the timer fires
	clk.Set(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	tl.last().fn()

	notify, _ := disp.counts()
	assert.Equal(t, 1, notify)
	got, _ := reg.Get("r1")
	assert.Equal(t, "2025-06-09", got.FiredDate)
	assert.Equal(t, 24*time.Hour, tl.last().delay)

	// 08:00:30: fallback poll sees the same minute, stays quiet
	clk.Set(time.Date(2025, 6, 9, 8, 0, 30, 0, time.UTC))
	s.CheckDue()
	notify, _ = disp.counts()
	assert.Equal(t, 1, notify)

	// Next day 08:00: the rearmed timer fires again
	clk.Set(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))
	tl.last().fn()
	notify, _ = disp.counts()
	assert.Equal(t, 2, notify)
	got, _ = reg.Get("r1")
	assert.Equal(t, "2025-06-10", got.FiredDate)

	// Sanity: the delay computation rolls to tomorrow (+24h), not today
	assert.Equal(t, 24*time.Hour, clock.UntilNext(clk.Now(), 8, 0))
}
