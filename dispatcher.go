package main

import (
	"fyne.io/fyne/v2"

	"github.com/snehaj2206-pixel/medscan/pkg/audio"
)

// MedScan is the scheduler.Dispatcher: it turns due-reminder and expiry
// events into a system notification, the repeating alarm tone and the alarm
// window. All of it is best-effort and never reports failure to the core.

// Notify sends a system notification. Delivery is platform-dependent and
// silently absorbed when unsupported.
func (ms *MedScan) Notify(title, body string) {
	ms.app.SendNotification(fyne.NewNotification(title, body))
}

// StartAlarm begins the repeating two-tone alarm and shows the alarm window.
// A second call while the alarm is running just updates the message.
func (ms *MedScan) StartAlarm(message string) {
	ms.alarmMu.Lock()
	defer ms.alarmMu.Unlock()

	if ms.alarmPlayer == nil {
		ms.alarmPlayer = audio.StartAlarm()
	}

	if ms.alarmWindow == nil {
		ms.alarmWindow = NewAlarmWindow(ms.app, message, ms.StopAlarm)
	} else {
		ms.alarmWindow.SetMessage(message)
	}
	ms.alarmWindow.Show()
}

// StopAlarm halts tone generation and closes the alarm window. Safe to call
// when no alarm is running.
func (ms *MedScan) StopAlarm() {
	ms.alarmMu.Lock()
	defer ms.alarmMu.Unlock()

	if ms.alarmPlayer != nil {
		ms.alarmPlayer.Stop()
		ms.alarmPlayer = nil
	}

	if ms.alarmWindow != nil {
		ms.alarmWindow.Close()
		ms.alarmWindow = nil
	}

	// The fired state changed while the alarm was up
	if ms.mainWindow != nil {
		ms.mainWindow.refreshReminders()
	}
	ms.updateSystemTrayMenu()
}
