package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

// ErrDuplicateTime is returned by Add when a reminder already exists for the
// requested time-of-day.
var ErrDuplicateTime = errors.New("a reminder is already set for this time")

// ReminderStore owns the in-memory reminder list plus the expiry date and
// package photo, and persists every mutation through the MedStore. It never
// touches timers; the scheduler references reminders by ID only.
type ReminderStore struct {
	mu sync.RWMutex

	med *MedStore

	reminders []models.Reminder
	expiry    string
	image     string
}

// NewReminderStore creates a ReminderStore populated from persisted state.
func NewReminderStore(med *MedStore) *ReminderStore {
	rs := &ReminderStore{med: med}
	rs.reminders, rs.expiry, rs.image = med.Load()
	return rs
}

// persist writes the current state. Callers must hold the lock.
func (rs *ReminderStore) persist() {
	rs.med.Save(rs.reminders, rs.expiry, rs.image)
}

// Add creates a reminder for the given time-of-day. It fails with
// ErrDuplicateTime if one already exists for that time.
func (rs *ReminderStore) Add(hour, minute int) (models.Reminder, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for _, r := range rs.reminders {
		if r.Matches(hour, minute) {
			return models.Reminder{}, ErrDuplicateTime
		}
	}

	rem := models.Reminder{
		ID:     uuid.New().String(),
		Hour:   hour,
		Minute: minute,
	}
	rs.reminders = append(rs.reminders, rem)
	rs.persist()
	return rem, nil
}

// Remove deletes the reminder with the given ID. The caller is expected to
// cancel its timer first so no orphaned timer survives removal.
func (rs *ReminderStore) Remove(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i, r := range rs.reminders {
		if r.ID == id {
			rs.reminders = append(rs.reminders[:i], rs.reminders[i+1:]...)
			rs.persist()
			return
		}
	}
}

// ToggleTaken flips the taken flag. Purely a user-tracking annotation; it has
// no effect on scheduling or firing.
func (rs *ReminderStore) ToggleTaken(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i := range rs.reminders {
		if rs.reminders[i].ID == id {
			rs.reminders[i].Taken = !rs.reminders[i].Taken
			rs.persist()
			return
		}
	}
}

// MarkFired records that the reminder fired on the given day. Idempotent
// within the same day.
func (rs *ReminderStore) MarkFired(id, dayKey string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for i := range rs.reminders {
		if rs.reminders[i].ID == id {
			if rs.reminders[i].FiredDate != dayKey {
				rs.reminders[i].FiredDate = dayKey
				rs.persist()
			}
			return
		}
	}
}

// Get returns the reminder with the given ID.
func (rs *ReminderStore) Get(id string) (models.Reminder, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	for _, r := range rs.reminders {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reminder{}, false
}

// All returns a copy of the reminder list.
func (rs *ReminderStore) All() []models.Reminder {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make([]models.Reminder, len(rs.reminders))
	copy(out, rs.reminders)
	return out
}

// SetExpiry stores the expiry date (YYYY-MM-DD).
func (rs *ReminderStore) SetExpiry(date string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.expiry = date
	rs.persist()
}

// ClearExpiry removes the stored expiry date.
func (rs *ReminderStore) ClearExpiry() {
	rs.SetExpiry("")
}

// Expiry returns the stored expiry date, or empty when none is set.
func (rs *ReminderStore) Expiry() string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.expiry
}

// SetImage stores the encoded package photo, replacing any previous one.
func (rs *ReminderStore) SetImage(encoded string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.image = encoded
	rs.persist()
}

// ClearImage removes the stored photo.
func (rs *ReminderStore) ClearImage() {
	rs.SetImage("")
}

// Image returns the stored encoded photo, or empty when none is set.
func (rs *ReminderStore) Image() string {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.image
}
