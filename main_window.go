package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/snehaj2206-pixel/medscan/pkg/expiry"
	"github.com/snehaj2206-pixel/medscan/pkg/export"
	"github.com/snehaj2206-pixel/medscan/pkg/medinfo"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

var languageNames = map[string]string{
	"English": models.LangEnglish,
	"हिंदी":   models.LangHindi,
	"मराठी":   models.LangMarathi,
}

// MainWindow is the single app window: info, reminders, expiry, photo and
// settings tabs.
type MainWindow struct {
	ms     *MedScan
	window fyne.Window

	infoLabels   map[string]*widget.Label
	reminderList *widget.List
	items        []models.Reminder

	expiryDateLabel *widget.Label
	expiryDaysLabel *widget.Label

	imageBox *fyne.Container
}

func NewMainWindow(ms *MedScan) *MainWindow {
	mw := &MainWindow{
		ms:         ms,
		infoLabels: make(map[string]*widget.Label),
	}

	mw.window = ms.app.NewWindow("MedScan - " + ms.med.Name)
	mw.window.Resize(fyne.NewSize(520, 560))

	// The app keeps running in the tray; closing the window only hides it
	mw.window.SetCloseIntercept(func() {
		mw.window.Hide()
	})

	tabs := container.NewAppTabs(
		container.NewTabItem("Info", mw.buildInfoTab()),
		container.NewTabItem("Reminders", mw.buildRemindersTab()),
		container.NewTabItem("Expiry", mw.buildExpiryTab()),
		container.NewTabItem("Photo", mw.buildPhotoTab()),
		container.NewTabItem("Settings", mw.buildSettingsTab()),
	)

	mw.window.SetContent(tabs)

	mw.refreshInfo()
	mw.refreshReminders()
	mw.refreshExpiry()
	mw.refreshImage()

	return mw
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}

func (mw *MainWindow) buildInfoTab() fyne.CanvasObject {
	name := canvas.NewText(mw.ms.med.Name, nil)
	name.TextSize = 22

	api := widget.NewLabel(mw.ms.med.API)
	contents := widget.NewLabel(mw.ms.med.Contents)

	// Language options in a stable order
	options := []string{"English", "हिंदी", "मराठी"}
	selected := "English"
	for display, code := range languageNames {
		if code == mw.ms.config.Language {
			selected = display
		}
	}

	langSelect := widget.NewSelect(options, func(display string) {
		mw.ms.config.Language = languageNames[display]
		mw.ms.saveConfig()
		mw.refreshInfo()
	})
	langSelect.SetSelected(selected)

	sections := container.NewVBox()
	for _, id := range medinfo.Sections {
		heading := widget.NewLabelWithStyle(medinfo.Titles[id], fyne.TextAlignLeading,
			fyne.TextStyle{Bold: true})
		text := widget.NewLabel("")
		text.Wrapping = fyne.TextWrapWord
		mw.infoLabels[id] = text
		sections.Add(heading)
		sections.Add(text)
	}

	top := container.NewVBox(
		name,
		api,
		contents,
		container.NewBorder(nil, nil, widget.NewLabel("Language"), nil, langSelect),
		widget.NewSeparator(),
	)

	return container.NewBorder(top, nil, nil, nil, container.NewScroll(sections))
}

func (mw *MainWindow) refreshInfo() {
	for _, id := range medinfo.Sections {
		mw.infoLabels[id].SetText(mw.ms.catalog.Text(mw.ms.config.Language, id))
	}
}

func (mw *MainWindow) buildRemindersTab() fyne.CanvasObject {
	hourEntry := widget.NewEntry()
	hourEntry.SetPlaceHolder("HH")
	minEntry := widget.NewEntry()
	minEntry.SetPlaceHolder("MM")

	addButton := widget.NewButton("Add Reminder", func() {
		hour, errH := strconv.Atoi(hourEntry.Text)
		minute, errM := strconv.Atoi(minEntry.Text)
		if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			dialog.ShowError(fmt.Errorf("please enter a valid time (00-23 hours, 00-59 minutes)"), mw.window)
			return
		}

		rem, err := mw.ms.addReminder(hour, minute)
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}

		hourEntry.SetText("")
		minEntry.SetText("")
		mw.refreshReminders()
		dialog.ShowInformation("Reminder", "Reminder set for "+rem.TimeOfDay(), mw.window)
	})

	mw.reminderList = widget.NewList(
		func() int {
			return len(mw.items)
		},
		func() fyne.CanvasObject {
			take := widget.NewButton("Take", nil)
			del := widget.NewButton("Delete", nil)
			del.Importance = widget.DangerImportance
			return container.NewBorder(nil, nil, nil,
				container.NewHBox(take, del),
				widget.NewLabel("template"))
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(mw.items) {
				return
			}
			rem := mw.items[i]

			border := o.(*fyne.Container)
			label := border.Objects[0].(*widget.Label)
			buttons := border.Objects[1].(*fyne.Container)
			take := buttons.Objects[0].(*widget.Button)
			del := buttons.Objects[1].(*widget.Button)

			status := "Pending"
			if rem.Taken {
				status = "Taken"
			}
			label.SetText(rem.TimeOfDay() + "  (" + status + ")")

			if rem.Taken {
				take.SetText("Mark not taken")
			} else {
				take.SetText("Mark taken")
			}

			id := rem.ID
			take.OnTapped = func() {
				mw.ms.reminders.ToggleTaken(id)
				mw.refreshReminders()
			}
			del.OnTapped = func() {
				mw.ms.removeReminder(id)
				mw.refreshReminders()
			}
		})

	addRow := container.NewBorder(nil, nil, nil, addButton,
		container.NewGridWithColumns(2, hourEntry, minEntry))

	return container.NewBorder(addRow, nil, nil, nil, mw.reminderList)
}

func (mw *MainWindow) refreshReminders() {
	mw.items = mw.ms.reminders.All()
	mw.reminderList.Refresh()
}

func (mw *MainWindow) buildExpiryTab() fyne.CanvasObject {
	dateEntry := widget.NewEntry()
	dateEntry.SetPlaceHolder("YYYY-MM-DD")
	if exp := mw.ms.reminders.Expiry(); exp != "" {
		dateEntry.SetText(exp)
	}

	saveButton := widget.NewButton("Save Expiry", func() {
		if dateEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("please choose an expiry date"), mw.window)
			return
		}
		if _, err := time.ParseInLocation(expiry.DateLayout, dateEntry.Text, time.Local); err != nil {
			dialog.ShowError(fmt.Errorf("invalid date, expected YYYY-MM-DD"), mw.window)
			return
		}

		mw.ms.reminders.SetExpiry(dateEntry.Text)
		mw.refreshExpiry()
		dialog.ShowInformation("Expiry", "Expiry saved: "+dateEntry.Text, mw.window)
	})

	clearButton := widget.NewButton("Clear", func() {
		mw.ms.reminders.ClearExpiry()
		dateEntry.SetText("")
		mw.refreshExpiry()
	})

	mw.expiryDateLabel = widget.NewLabel("--")
	mw.expiryDaysLabel = widget.NewLabel("--")

	form := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(saveButton, clearButton), dateEntry),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewLabelWithStyle("Expiry date", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			mw.expiryDateLabel,
			widget.NewLabelWithStyle("Days remaining", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			mw.expiryDaysLabel,
		),
	)

	return form
}

func (mw *MainWindow) refreshExpiry() {
	days, _, ok := mw.ms.evaluator.Evaluate(mw.ms.reminders.Expiry())
	if !ok {
		mw.expiryDateLabel.SetText("--")
		mw.expiryDaysLabel.SetText("--")
		return
	}

	mw.expiryDateLabel.SetText(mw.ms.reminders.Expiry())
	mw.expiryDaysLabel.SetText(strconv.Itoa(days))
}

func (mw *MainWindow) buildPhotoTab() fyne.CanvasObject {
	mw.imageBox = container.NewStack()

	uploadButton := widget.NewButton("Upload Photo", func() {
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				dialog.ShowError(err, mw.window)
				return
			}

			mw.ms.reminders.SetImage(base64.StdEncoding.EncodeToString(data))
			mw.refreshImage()
		}, mw.window)
	})

	removeButton := widget.NewButton("Remove Photo", func() {
		mw.ms.reminders.ClearImage()
		mw.refreshImage()
	})

	buttons := container.NewHBox(uploadButton, removeButton)

	return container.NewBorder(buttons, nil, nil, nil, mw.imageBox)
}

func (mw *MainWindow) refreshImage() {
	mw.imageBox.RemoveAll()

	encoded := mw.ms.reminders.Image()
	if encoded == "" {
		mw.imageBox.Add(container.NewCenter(widget.NewLabel("No photo")))
		mw.imageBox.Refresh()
		return
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Printf("Stored photo is not valid base64: %v", err)
		mw.imageBox.Add(container.NewCenter(widget.NewLabel("No photo")))
		mw.imageBox.Refresh()
		return
	}

	img := canvas.NewImageFromResource(fyne.NewStaticResource("package-photo", data))
	img.FillMode = canvas.ImageFillContain
	mw.imageBox.Add(img)
	mw.imageBox.Refresh()
}

func (mw *MainWindow) buildSettingsTab() fyne.CanvasObject {
	autostartCheck := widget.NewCheck("Launch at login", func(enabled bool) {
		mw.ms.config.AutoStart = enabled
		mw.ms.saveConfig()
		if err := setupAutostart(enabled); err != nil {
			dialog.ShowError(err, mw.window)
		}
	})
	autostartCheck.SetChecked(mw.ms.config.AutoStart)

	testButton := widget.NewButton("Send Test Notification", func() {
		mw.ms.Notify("MedScan", "Notifications are working")
	})

	exportButton := widget.NewButton("Export Schedule (.ics)", func() {
		data, err := export.ICal(mw.ms.reminders.All(), mw.ms.med, time.Now())
		if err != nil {
			dialog.ShowError(err, mw.window)
			return
		}

		fileSave := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer wc.Close()

			if _, err := wc.Write(data); err != nil {
				dialog.ShowError(err, mw.window)
			}
		}, mw.window)
		fileSave.SetFileName("medscan.ics")
		fileSave.Show()
	})

	return container.NewVBox(
		autostartCheck,
		widget.NewSeparator(),
		testButton,
		exportButton,
	)
}
