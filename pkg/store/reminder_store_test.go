package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehaj2206-pixel/medscan/pkg/models"
)

func testReminderStore(t *testing.T) *ReminderStore {
	t.Helper()
	return NewReminderStore(NewMedStore(test.NewApp(), models.DefaultMedicine))
}

func TestReminderStore_Add(t *testing.T) {
	rs := testReminderStore(t)

	rem, err := rs.Add(8, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, rem.ID)
	assert.Equal(t, "08:00", rem.TimeOfDay())
	assert.False(t, rem.Taken)
	assert.Empty(t, rem.FiredDate)
}

func TestReminderStore_AddRejectsDuplicateTime(t *testing.T) {
	rs := testReminderStore(t)

	_, err := rs.Add(8, 0)
	require.NoError(t, err)

	_, err = rs.Add(8, 0)
	assert.ErrorIs(t, err, ErrDuplicateTime)

	// The registry still holds exactly one reminder at that time
	assert.Len(t, rs.All(), 1)
}

func TestReminderStore_Remove(t *testing.T) {
	rs := testReminderStore(t)

	rem, err := rs.Add(8, 0)
	require.NoError(t, err)

	rs.Remove(rem.ID)
	_, ok := rs.Get(rem.ID)
	assert.False(t, ok)

	// Removing an unknown ID is a no-op
	rs.Remove("missing")
}

func TestReminderStore_ToggleTaken(t *testing.T) {
	rs := testReminderStore(t)

	rem, err := rs.Add(8, 0)
	require.NoError(t, err)

	rs.ToggleTaken(rem.ID)
	got, ok := rs.Get(rem.ID)
	require.True(t, ok)
	assert.True(t, got.Taken)

	rs.ToggleTaken(rem.ID)
	got, _ = rs.Get(rem.ID)
	assert.False(t, got.Taken)

	// Taken does not touch scheduling state
	assert.Empty(t, got.FiredDate)
}

func TestReminderStore_MarkFiredIdempotent(t *testing.T) {
	rs := testReminderStore(t)

	rem, err := rs.Add(8, 0)
	require.NoError(t, err)

	rs.MarkFired(rem.ID, "2025-06-09")
	rs.MarkFired(rem.ID, "2025-06-09")

	got, ok := rs.Get(rem.ID)
	require.True(t, ok)
	assert.Equal(t, "2025-06-09", got.FiredDate)
}

func TestReminderStore_PersistsAcrossInstances(t *testing.T) {
	app := test.NewApp()
	med := NewMedStore(app, models.DefaultMedicine)

	rs := NewReminderStore(med)
	rem, err := rs.Add(8, 0)
	require.NoError(t, err)
	rs.SetExpiry("2025-12-31")
	rs.SetImage("aW1hZ2U=")

	// A fresh ReminderStore over the same preferences sees the same state
	rs2 := NewReminderStore(NewMedStore(app, models.DefaultMedicine))
	got, ok := rs2.Get(rem.ID)
	require.True(t, ok)
	assert.Equal(t, rem, got)
	assert.Equal(t, "2025-12-31", rs2.Expiry())
	assert.Equal(t, "aW1hZ2U=", rs2.Image())
}

func TestReminderStore_ClearExpiryAndImage(t *testing.T) {
	rs := testReminderStore(t)

	rs.SetExpiry("2025-12-31")
	rs.SetImage("aW1hZ2U=")

	rs.ClearExpiry()
	rs.ClearImage()

	assert.Empty(t, rs.Expiry())
	assert.Empty(t, rs.Image())
}
