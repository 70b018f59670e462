// Package export renders the reminder schedule as an iCalendar document so
// it can be imported into calendar apps.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

// ICal encodes each reminder as a daily-recurring VEVENT with a display
// alarm at the event time.
func ICal(reminders []models.Reminder, med models.Medicine, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//medscan//MedScan//EN")

	for _, rem := range reminders {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, rem.ID+"@medscan")
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetDateTime(ical.PropDateTimeStart, nextOccurrence(now, rem))
		event.Props.SetText(ical.PropSummary, fmt.Sprintf("Take %s", med.Name))
		event.Props.SetText(ical.PropDescription, med.Contents)
		event.Props.Set(&ical.Prop{Name: ical.PropRecurrenceRule, Value: "FREQ=DAILY"})

		alarm := &ical.Component{Name: ical.CompAlarm, Props: make(ical.Props)}
		alarm.Props.SetText(ical.PropAction, "DISPLAY")
		alarm.Props.SetText(ical.PropDescription, fmt.Sprintf("Time to take %s (%s)", med.Name, rem.TimeOfDay()))
		alarm.Props.Set(&ical.Prop{Name: ical.PropTrigger, Value: "PT0S"})
		event.Children = append(event.Children, alarm)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// nextOccurrence returns the next time the reminder fires, today if its time
// is still ahead and tomorrow otherwise.
func nextOccurrence(now time.Time, rem models.Reminder) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), rem.Hour, rem.Minute, 0, 0, now.Location())
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
