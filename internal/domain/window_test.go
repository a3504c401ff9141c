package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/PRS-VisitService/pkg/types"
)

func TestAvailabilityWindow_Validate(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	weekday := time.Tuesday

	tests := []struct {
		name    string
		window  AvailabilityWindow
		wantErr bool
	}{
		{
			name: "valid dated",
			window: AvailabilityWindow{
				Kind:      WindowKindDated,
				VisitDate: &date,
				StartTime: "09:00",
				EndTime:   "11:00",
			},
		},
		{
			name: "valid weekly",
			window: AvailabilityWindow{
				Kind:      WindowKindWeekly,
				Weekday:   &weekday,
				StartTime: "14:00",
				EndTime:   "18:00",
			},
		},
		{
			name: "dated without date",
			window: AvailabilityWindow{
				Kind:      WindowKindDated,
				StartTime: "09:00",
				EndTime:   "11:00",
			},
			wantErr: true,
		},
		{
			name: "dated with stray weekday",
			window: AvailabilityWindow{
				Kind:      WindowKindDated,
				VisitDate: &date,
				Weekday:   &weekday,
				StartTime: "09:00",
				EndTime:   "11:00",
			},
			wantErr: true,
		},
		{
			name: "weekly without weekday",
			window: AvailabilityWindow{
				Kind:      WindowKindWeekly,
				StartTime: "09:00",
				EndTime:   "11:00",
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			window: AvailabilityWindow{
				Kind:      WindowKind("monthly"),
				VisitDate: &date,
				StartTime: "09:00",
				EndTime:   "11:00",
			},
			wantErr: true,
		},
		{
			name: "start equals end",
			window: AvailabilityWindow{
				Kind:      WindowKindDated,
				VisitDate: &date,
				StartTime: "09:00",
				EndTime:   "09:00",
			},
			wantErr: true,
		},
		{
			name: "start after end",
			window: AvailabilityWindow{
				Kind:      WindowKindDated,
				VisitDate: &date,
				StartTime: "11:00",
				EndTime:   "09:00",
			},
			wantErr: true,
		},
		{
			name: "malformed start time",
			window: AvailabilityWindow{
				Kind:      WindowKindDated,
				VisitDate: &date,
				StartTime: "9 утра",
				EndTime:   "11:00",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOccurrences_DatedInRange(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	w := AvailabilityWindow{
		Kind:      WindowKindDated,
		VisitDate: &date,
		StartTime: "09:00",
		EndTime:   "11:00",
	}

	from := time.Date(2026, 9, 10, 12, 30, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 30)

	dates, err := w.Occurrences(from, until)
	require.NoError(t, err)

	require.Len(t, dates, 1)
	assert.Equal(t, date, dates[0])
}

func TestOccurrences_DatedOutOfRange(t *testing.T) {
	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 30)

	past := from.AddDate(0, 0, -1)
	farFuture := from.AddDate(0, 0, 31)

	for name, date := range map[string]time.Time{"past": past, "beyond horizon": farFuture} {
		t.Run(name, func(t *testing.T) {
			w := AvailabilityWindow{
				Kind:      WindowKindDated,
				VisitDate: &date,
				StartTime: "09:00",
				EndTime:   "11:00",
			}

			dates, err := w.Occurrences(from, until)
			require.NoError(t, err)
			assert.Empty(t, dates)
		})
	}
}

func TestOccurrences_DatedTodayIncluded(t *testing.T) {
	// Окно на сегодняшнюю дату попадает в диапазон, даже если from - середина дня
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	w := AvailabilityWindow{
		Kind:      WindowKindDated,
		VisitDate: &date,
		StartTime: "09:00",
		EndTime:   "11:00",
	}

	from := date.Add(17 * time.Hour)
	dates, err := w.Occurrences(from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	require.Len(t, dates, 1)
	assert.Equal(t, date, dates[0])
}

func TestOccurrences_WeeklyBoundedAndSorted(t *testing.T) {
	weekday := time.Monday
	w := AvailabilityWindow{
		Kind:      WindowKindWeekly,
		Weekday:   &weekday,
		StartTime: "10:00",
		EndTime:   "12:00",
	}

	// 2026-09-07 - понедельник
	from := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 28)

	dates, err := w.Occurrences(from, until)
	require.NoError(t, err)

	require.Len(t, dates, 4)
	for i, d := range dates {
		assert.Equal(t, time.Monday, d.Weekday())
		assert.Equal(t, 0, d.Hour())
		if i > 0 {
			assert.Equal(t, dates[i-1].AddDate(0, 0, 7), d)
		}
		assert.True(t, d.Before(until))
	}
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), dates[0])
}

func TestOccurrences_EmptyRange(t *testing.T) {
	weekday := time.Friday
	w := AvailabilityWindow{
		Kind:      WindowKindWeekly,
		Weekday:   &weekday,
		StartTime: "10:00",
		EndTime:   "12:00",
	}

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	dates, err := w.Occurrences(from, from)
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestExpandWindows_OrderedByDateThenStart(t *testing.T) {
	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	afternoon := day
	morningNext := nextDay
	windows := []*AvailabilityWindow{
		{Kind: WindowKindDated, VisitDate: &morningNext, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("11:00")},
		{Kind: WindowKindDated, VisitDate: &afternoon, StartTime: types.TimeString("15:00"), EndTime: types.TimeString("17:00")},
		{Kind: WindowKindDated, VisitDate: &afternoon, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("11:00")},
	}

	from := day.Add(-24 * time.Hour)
	occurrences, err := ExpandWindows(windows, from, from.AddDate(0, 0, 10))
	require.NoError(t, err)

	require.Len(t, occurrences, 3)
	assert.Equal(t, day, occurrences[0].Date)
	assert.Equal(t, types.TimeString("09:00"), occurrences[0].Window.StartTime)
	assert.Equal(t, day, occurrences[1].Date)
	assert.Equal(t, types.TimeString("15:00"), occurrences[1].Window.StartTime)
	assert.Equal(t, nextDay, occurrences[2].Date)
}

func TestExpandWindows_MixedKinds(t *testing.T) {
	// 2026-09-07 - понедельник
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 14)

	monday := time.Monday
	dated := from.AddDate(0, 0, 3)
	windows := []*AvailabilityWindow{
		{Kind: WindowKindWeekly, Weekday: &monday, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("12:00")},
		{Kind: WindowKindDated, VisitDate: &dated, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("11:00")},
	}

	occurrences, err := ExpandWindows(windows, from, until)
	require.NoError(t, err)

	// Понедельники 07.09 и 14.09 плюс датированное окно 10.09
	require.Len(t, occurrences, 3)
	assert.Equal(t, from, occurrences[0].Date)
	assert.Equal(t, dated, occurrences[1].Date)
	assert.Equal(t, from.AddDate(0, 0, 7), occurrences[2].Date)
}
