package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/PRS-VisitService/pkg/types"
)

func datedWindow(t *testing.T, date time.Time, start, end string) *AvailabilityWindow {
	t.Helper()
	d := midnight(date, date.Location())
	w := &AvailabilityWindow{
		ID:         1,
		PropertyID: 10,
		Kind:       WindowKindDated,
		VisitDate:  &d,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
	}
	require.NoError(t, w.Validate())
	return w
}

func occurrenceOn(t *testing.T, w *AvailabilityWindow, date time.Time) WindowOccurrence {
	t.Helper()
	return WindowOccurrence{Window: w, Date: midnight(date, date.Location())}
}

func TestGenerateSlots_EvenDivision(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := datedWindow(t, day, "09:00", "11:00")
	now := day.Add(-24 * time.Hour)

	slots, err := GenerateSlots([]WindowOccurrence{occurrenceOn(t, w, day)}, 30, now, nil)
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].StartsAt)
	assert.Equal(t, day.Add(9*time.Hour+30*time.Minute), slots[1].StartsAt)
	assert.Equal(t, day.Add(10*time.Hour), slots[2].StartsAt)
	assert.Equal(t, day.Add(10*time.Hour+30*time.Minute), slots[3].StartsAt)
	assert.Equal(t, 30, slots[0].DurationMinutes)
}

func TestGenerateSlots_DurationMustFitWindow(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := datedWindow(t, day, "09:00", "10:00")
	now := day.Add(-24 * time.Hour)

	// 45-минутный визит: второй слот (09:45) закончился бы в 10:30, за краем окна
	slots, err := GenerateSlots([]WindowOccurrence{occurrenceOn(t, w, day)}, 45, now, nil)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].StartsAt)
}

func TestGenerateSlots_SkipsOccupiedInstants(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := datedWindow(t, day, "09:00", "11:00")
	now := day.Add(-24 * time.Hour)

	occupied := map[int64]struct{}{
		day.Add(9*time.Hour + 30*time.Minute).Unix(): {},
		day.Add(10 * time.Hour).Unix():               {},
	}

	slots, err := GenerateSlots([]WindowOccurrence{occurrenceOn(t, w, day)}, 30, now, occupied)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].StartsAt)
	assert.Equal(t, day.Add(10*time.Hour+30*time.Minute), slots[1].StartsAt)
}

func TestGenerateSlots_FiltersPastInstants(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := datedWindow(t, day, "09:00", "11:00")

	// Сейчас 09:45: слоты 09:00 и 09:30 уже в прошлом
	now := day.Add(9*time.Hour + 45*time.Minute)

	slots, err := GenerateSlots([]WindowOccurrence{occurrenceOn(t, w, day)}, 30, now, nil)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(10*time.Hour), slots[0].StartsAt)
	assert.Equal(t, day.Add(10*time.Hour+30*time.Minute), slots[1].StartsAt)
}

func TestGenerateSlots_DeduplicatesOverlappingWindows(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	first := datedWindow(t, day, "09:00", "11:00")
	second := datedWindow(t, day, "10:00", "12:00")
	now := day.Add(-24 * time.Hour)

	occurrences := []WindowOccurrence{
		occurrenceOn(t, first, day),
		occurrenceOn(t, second, day),
	}

	slots, err := GenerateSlots(occurrences, 60, now, nil)
	require.NoError(t, err)

	// 09:00 и 10:00 из первого окна, 11:00 из второго; 10:00 не дублируется
	require.Len(t, slots, 3)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].StartsAt)
	assert.Equal(t, day.Add(10*time.Hour), slots[1].StartsAt)
	assert.Equal(t, day.Add(11*time.Hour), slots[2].StartsAt)
}

func TestGenerateSlots_SortedAcrossWindows(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	late := datedWindow(t, day, "15:00", "16:00")
	early := datedWindow(t, day, "09:00", "10:00")
	now := day.Add(-24 * time.Hour)

	// Вхождения нарочно в обратном порядке
	occurrences := []WindowOccurrence{
		occurrenceOn(t, late, day),
		occurrenceOn(t, early, day),
	}

	slots, err := GenerateSlots(occurrences, 60, now, nil)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.True(t, slots[0].StartsAt.Before(slots[1].StartsAt))
}

func TestGenerateSlots_RejectsNonPositiveDuration(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := datedWindow(t, day, "09:00", "11:00")

	_, err := GenerateSlots([]WindowOccurrence{occurrenceOn(t, w, day)}, 0, day, nil)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestOccupiedSet_IgnoresTerminalVisits(t *testing.T) {
	at := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	visits := []*Visit{
		{ID: 1, ScheduledAt: at, Status: StatusConfirmed},
		{ID: 2, ScheduledAt: at.Add(30 * time.Minute), Status: StatusCancelled},
		{ID: 3, ScheduledAt: at.Add(time.Hour), Status: StatusCompleted},
	}

	occupied := OccupiedSet(visits)

	require.Len(t, occupied, 1)
	_, ok := occupied[at.Unix()]
	assert.True(t, ok)
}

func TestContainsInstant(t *testing.T) {
	at := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	slots := []Slot{
		{StartsAt: at, DurationMinutes: 30},
		{StartsAt: at.Add(30 * time.Minute), DurationMinutes: 30},
	}

	assert.True(t, ContainsInstant(slots, at))
	// Тот же момент в другой таймзоне всё ещё совпадает
	assert.True(t, ContainsInstant(slots, at.In(time.FixedZone("UTC+3", 3*3600))))
	assert.False(t, ContainsInstant(slots, at.Add(15*time.Minute)))
	assert.False(t, ContainsInstant(nil, at))
}
