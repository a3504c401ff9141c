package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/avolkov/PRS-VisitService/pkg/types"
)

// WindowKind вид окна доступности
type WindowKind string

const (
	// WindowKindDated окно на конкретную календарную дату
	WindowKindDated WindowKind = "dated"

	// WindowKindWeekly еженедельно повторяющееся окно
	// Разворачивается в конкретные даты в пределах ограниченного горизонта
	WindowKindWeekly WindowKind = "weekly"
)

var (
	// ErrInvalidWindow возвращается при некорректном определении окна
	ErrInvalidWindow = errors.New("domain: invalid availability window")
)

// AvailabilityWindow определяет интервал времени, в который объект открыт для визитов
// Окно задаётся либо конкретной датой (dated), либо днём недели (weekly) -
// представление помечено видом, смешивать поля разных видов нельзя
type AvailabilityWindow struct {
	ID         int64
	PropertyID int64
	Kind       WindowKind

	VisitDate *time.Time    // только для kind=dated
	Weekday   *time.Weekday // только для kind=weekly

	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
}

// Validate проверяет консистентность окна
func (w *AvailabilityWindow) Validate() error {
	switch w.Kind {
	case WindowKindDated:
		if w.VisitDate == nil || w.Weekday != nil {
			return fmt.Errorf("%w: dated window requires a date and no weekday", ErrInvalidWindow)
		}
	case WindowKindWeekly:
		if w.Weekday == nil || w.VisitDate != nil {
			return fmt.Errorf("%w: weekly window requires a weekday and no date", ErrInvalidWindow)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidWindow, w.Kind)
	}

	if _, err := w.StartTime.Minutes(); err != nil {
		return fmt.Errorf("%w: bad start time: %v", ErrInvalidWindow, err)
	}
	if _, err := w.EndTime.Minutes(); err != nil {
		return fmt.Errorf("%w: bad end time: %v", ErrInvalidWindow, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: start time %s must be before end time %s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}

	return nil
}

// WindowOccurrence окно, привязанное к конкретной календарной дате
type WindowOccurrence struct {
	Window *AvailabilityWindow
	Date   time.Time // полночь в таймзоне запроса
}

// Occurrences разворачивает окно в конкретные даты в диапазоне [from, until)
// Для dated-окон это либо сама дата, либо пусто; для weekly-окон - все
// вхождения дня недели в диапазоне. Диапазон всегда конечен, поэтому
// результат ограничен по построению.
func (w *AvailabilityWindow) Occurrences(from, until time.Time) ([]time.Time, error) {
	if !from.Before(until) {
		return nil, nil
	}

	switch w.Kind {
	case WindowKindDated:
		if w.VisitDate == nil {
			return nil, fmt.Errorf("%w: dated window without a date", ErrInvalidWindow)
		}
		date := midnight(*w.VisitDate, from.Location())
		if date.Before(midnight(from, from.Location())) || !date.Before(until) {
			return nil, nil
		}
		return []time.Time{date}, nil

	case WindowKindWeekly:
		if w.Weekday == nil {
			return nil, fmt.Errorf("%w: weekly window without a weekday", ErrInvalidWindow)
		}
		rule, err := rrule.NewRRule(rrule.ROption{
			Freq:      rrule.WEEKLY,
			Dtstart:   midnight(from, from.Location()),
			Byweekday: []rrule.Weekday{rruleWeekday(*w.Weekday)},
		})
		if err != nil {
			return nil, fmt.Errorf("%w: build recurrence rule: %v", ErrInvalidWindow, err)
		}
		// Between с inc=true включает границы; верхнюю границу исключаем сами
		occurrences := rule.Between(midnight(from, from.Location()), until, true)
		result := make([]time.Time, 0, len(occurrences))
		for _, occ := range occurrences {
			if occ.Before(until) {
				result = append(result, occ)
			}
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidWindow, w.Kind)
	}
}

// ExpandWindows разворачивает набор окон в последовательность вхождений,
// отсортированную по (дата, время начала) по возрастанию
func ExpandWindows(windows []*AvailabilityWindow, from, until time.Time) ([]WindowOccurrence, error) {
	occurrences := make([]WindowOccurrence, 0, len(windows))

	for _, w := range windows {
		dates, err := w.Occurrences(from, until)
		if err != nil {
			return nil, err
		}
		for _, date := range dates {
			occurrences = append(occurrences, WindowOccurrence{Window: w, Date: date})
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if !occurrences[i].Date.Equal(occurrences[j].Date) {
			return occurrences[i].Date.Before(occurrences[j].Date)
		}
		return occurrences[i].Window.StartTime.IsBefore(occurrences[j].Window.StartTime)
	})

	return occurrences, nil
}

// rruleWeekday конвертирует time.Weekday в rrule.Weekday
func rruleWeekday(wd time.Weekday) rrule.Weekday {
	switch wd {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}

// midnight возвращает полночь даты t в таймзоне loc
func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
