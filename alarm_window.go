package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AlarmWindow is the acknowledgement modal shown while the alarm tone is
// playing. Its single Dismiss action stops the alarm.
type AlarmWindow struct {
	window    fyne.Window
	message   *widget.Label
	onDismiss func()
}

// NewAlarmWindow builds the window. It may be called from a timer goroutine,
// so all widget work happens on the Fyne thread.
func NewAlarmWindow(app fyne.App, message string, onDismiss func()) *AlarmWindow {
	aw := &AlarmWindow{onDismiss: onDismiss}

	fyne.Do(func() {
		aw.window = app.NewWindow("Medicine Reminder")

		title := canvas.NewText("Time for your medicine", nil)
		title.TextSize = 24
		title.Alignment = fyne.TextAlignCenter

		aw.message = widget.NewLabel(message)
		aw.message.Wrapping = fyne.TextWrapWord
		aw.message.Alignment = fyne.TextAlignCenter

		dismiss := widget.NewButton("Dismiss", func() {
			if aw.onDismiss != nil {
				aw.onDismiss()
			}
		})
		dismiss.Importance = widget.HighImportance

		content := container.NewVBox(
			container.NewPadded(title),
			aw.message,
			widget.NewSeparator(),
			container.NewCenter(dismiss),
		)

		aw.window.SetContent(container.NewPadded(content))
		aw.window.Resize(fyne.NewSize(360, 200))
		aw.window.CenterOnScreen()

		// Closing via the title bar must also stop the alarm
		aw.window.SetCloseIntercept(func() {
			if aw.onDismiss != nil {
				aw.onDismiss()
			}
		})
	})

	return aw
}

// SetMessage replaces the window text, for an alarm re-triggered while the
// window is still up.
func (aw *AlarmWindow) SetMessage(message string) {
	fyne.Do(func() {
		if aw.message != nil {
			aw.message.SetText(message)
		}
	})
}

func (aw *AlarmWindow) Show() {
	fyne.Do(func() {
		if aw.window != nil {
			aw.window.Show()
			aw.window.RequestFocus()
		}
	})
}

func (aw *AlarmWindow) Close() {
	fyne.Do(func() {
		if aw.window != nil {
			aw.window.Close()
		}
	})
}
