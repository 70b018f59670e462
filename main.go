package main

import (
	"context"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/snehaj2206-pixel/medscan/pkg/audio"
	"github.com/snehaj2206-pixel/medscan/pkg/clock"
	"github.com/snehaj2206-pixel/medscan/pkg/expiry"
	"github.com/snehaj2206-pixel/medscan/pkg/medinfo"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
	"github.com/snehaj2206-pixel/medscan/pkg/scheduler"
	"github.com/snehaj2206-pixel/medscan/pkg/store"
)

type MedScan struct {
	app         fyne.App
	clk         clock.Clock
	med         models.Medicine
	config      *models.Config
	configStore *store.ConfigStore
	reminders   *store.ReminderStore
	scheduler   *scheduler.Scheduler
	evaluator   *expiry.Evaluator
	catalog     *medinfo.Catalog
	mainWindow  *MainWindow
	pollCancel  context.CancelFunc

	alarmMu     sync.Mutex
	alarmPlayer *audio.Player
	alarmWindow *AlarmWindow
}

func main() {
	ms := &MedScan{
		app: app.NewWithID("com.snehaj2206.medscan"),
		clk: clock.System{},
		med: models.DefaultMedicine,
	}

	if err := ms.initialize(); err != nil {
		log.Fatal(err)
	}

	ms.run()
}

func (ms *MedScan) initialize() error {
	ms.configStore = store.NewConfigStore(ms.app)
	ms.config = ms.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(ms.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	ms.configStore.Save(ms.config)

	ms.catalog = medinfo.NewCatalog()
	ms.reminders = store.NewReminderStore(store.NewMedStore(ms.app, ms.med))
	ms.scheduler = scheduler.New(ms.reminders, ms, ms.med)
	ms.evaluator = expiry.NewEvaluator(ms, ms.med)

	ms.setupSystemTray()

	// Rebuild the timer table from persisted reminders
	ms.scheduler.ArmAll()

	// Safety net for timers dropped across sleep/resume
	ctx, cancel := context.WithCancel(context.Background())
	ms.pollCancel = cancel
	go ms.scheduler.RunPoller(ctx)

	ms.mainWindow = NewMainWindow(ms)

	return nil
}

func (ms *MedScan) run() {
	ms.mainWindow.Show()
	ms.app.Run()
}

func (ms *MedScan) saveConfig() {
	ms.configStore.Save(ms.config)
}

// addReminder creates and arms a reminder. Returns the registry error for
// the UI to surface (duplicate time-of-day).
func (ms *MedScan) addReminder(hour, minute int) (models.Reminder, error) {
	rem, err := ms.reminders.Add(hour, minute)
	if err != nil {
		return models.Reminder{}, err
	}
	ms.scheduler.Arm(rem)
	ms.updateSystemTrayMenu()
	return rem, nil
}

// removeReminder cancels the reminder's timer before removing it from the
// registry, so no orphaned timer survives removal.
func (ms *MedScan) removeReminder(id string) {
	ms.scheduler.Cancel(id)
	ms.reminders.Remove(id)
	ms.updateSystemTrayMenu()
}

func (ms *MedScan) quit() {
	if ms.pollCancel != nil {
		ms.pollCancel()
	}
	ms.StopAlarm()
	ms.app.Quit()
}
