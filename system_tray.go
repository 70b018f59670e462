package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/snehaj2206-pixel/medscan/pkg/clock"
)

func (ms *MedScan) setupSystemTray() {
	ms.updateSystemTrayMenu()
}

func (ms *MedScan) updateSystemTrayMenu() {
	desk, ok := ms.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Show today's still-pending reminder times at the top
	pending := ms.pendingToday()
	if len(pending) > 0 {
		headerItem := fyne.NewMenuItem("Due Today:", nil)
		headerItem.Disabled = true
		menuItems = append(menuItems, headerItem)

		for _, t := range pending {
			item := fyne.NewMenuItem("  "+t, nil)
			item.Disabled = true
			menuItems = append(menuItems, item)
		}

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
	}

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show", func() {
			ms.mainWindow.Show()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			ms.quit()
		}),
	)

	menu := fyne.NewMenu("MedScan", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(trayIcon())
}

// trayIcon is the status-area icon shown next to the tray menu.
func trayIcon() fyne.Resource {
	return theme.InfoIcon()
}

// pendingToday returns the times of reminders that have not fired today,
// sorted by the registry's insertion order.
func (ms *MedScan) pendingToday() []string {
	today := clock.DayKey(ms.clk.Now())

	times := []string{}
	for _, rem := range ms.reminders.All() {
		if rem.FiredDate != today {
			times = append(times, rem.TimeOfDay())
		}
	}
	return times
}
