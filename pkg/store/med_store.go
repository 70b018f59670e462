package store

import (
	"encoding/json"
	"log"

	"fyne.io/fyne/v2"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

// Storage key suffixes, one entry per product value.
const (
	keyPrefix       = "medscan_v3_"
	keyRemindersSfx = "_reminders"
	keyExpirySfx    = "_expiry"
	keyImageSfx     = "_img"
)

// MedStore persists the per-product state (reminder list, expiry date and
// package photo) using Fyne preferences. All keys are namespaced by the
// product slug so multiple products do not collide in the same store.
type MedStore struct {
	app  fyne.App
	base string
}

// NewMedStore creates a MedStore namespaced for the given medicine.
func NewMedStore(app fyne.App, med models.Medicine) *MedStore {
	return &MedStore{app: app, base: keyPrefix + med.Slug()}
}

// Load reads the persisted state. Missing entries yield zero values and a
// corrupt reminder list yields an empty one; Load never fails.
func (ms *MedStore) Load() (reminders []models.Reminder, expiry string, image string) {
	prefs := ms.app.Preferences()

	raw := prefs.String(ms.base + keyRemindersSfx)
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &reminders); err != nil {
			log.Printf("Corrupt reminder data, starting with an empty list: %v", err)
			reminders = nil
		}
	}

	expiry = prefs.String(ms.base + keyExpirySfx)
	image = prefs.String(ms.base + keyImageSfx)
	return reminders, expiry, image
}

// Save writes all three entries. An empty expiry or image removes the stored
// entry instead of writing a sentinel value.
func (ms *MedStore) Save(reminders []models.Reminder, expiry string, image string) {
	prefs := ms.app.Preferences()

	if data, err := json.Marshal(reminders); err == nil {
		prefs.SetString(ms.base+keyRemindersSfx, string(data))
	} else {
		log.Printf("Failed to encode reminders: %v", err)
	}

	if expiry != "" {
		prefs.SetString(ms.base+keyExpirySfx, expiry)
	} else {
		prefs.RemoveValue(ms.base + keyExpirySfx)
	}

	if image != "" {
		prefs.SetString(ms.base+keyImageSfx, image)
	} else {
		prefs.RemoveValue(ms.base + keyImageSfx)
	}
}
