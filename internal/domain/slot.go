package domain

import (
	"fmt"
	"sort"
	"time"
)

// Slot конкретный момент начала визита, доступный для бронирования
type Slot struct {
	StartsAt        time.Time
	DurationMinutes int
}

// GenerateSlots генерирует доступные моменты начала визитов из вхождений окон.
//
// Для каждого вхождения окна порождается последовательность start, start+d,
// start+2d, ... пока момент + длительность не выходит за конец окна.
// Момент попадает в результат, только если он не раньше now и не совпадает
// с занятым моментом (confirmed-визит). Дубликаты из пересекающихся окон
// схлопываются. Результат отсортирован хронологически.
//
// Список только рекомендательный: авторитетная проверка выполняется при
// создании визита повторной генерацией внутри транзакции.
func GenerateSlots(
	occurrences []WindowOccurrence,
	durationMinutes int,
	now time.Time,
	occupied map[int64]struct{},
) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: non-positive visit duration %d", ErrInvalidWindow, durationMinutes)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	seen := make(map[int64]struct{})
	slots := make([]Slot, 0)

	for _, occ := range occurrences {
		start, err := occ.Window.StartTime.At(occ.Date)
		if err != nil {
			return nil, err
		}
		endMinutes, err := occ.Window.EndTime.Minutes()
		if err != nil {
			return nil, err
		}
		end := midnight(occ.Date, occ.Date.Location()).Add(time.Duration(endMinutes) * time.Minute)

		for instant := start; !instant.Add(duration).After(end); instant = instant.Add(duration) {
			if instant.Before(now) {
				continue
			}

			key := instant.Unix()
			if _, taken := occupied[key]; taken {
				continue
			}
			// Пересекающиеся окна могут породить один и тот же момент дважды
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			slots = append(slots, Slot{StartsAt: instant, DurationMinutes: durationMinutes})
		}
	}

	// Вхождения отсортированы по (дата, начало), но пересекающиеся окна
	// могут нарушить общий порядок - сортируем итог явно
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartsAt.Before(slots[j].StartsAt)
	})

	return slots, nil
}

// OccupiedSet строит множество занятых моментов из confirmed-визитов
func OccupiedSet(visits []*Visit) map[int64]struct{} {
	occupied := make(map[int64]struct{}, len(visits))
	for _, v := range visits {
		if v.Status != StatusConfirmed {
			continue
		}
		occupied[v.ScheduledAt.Unix()] = struct{}{}
	}
	return occupied
}

// ContainsInstant возвращает true, если instant присутствует среди слотов
func ContainsInstant(slots []Slot, instant time.Time) bool {
	for _, s := range slots {
		if s.StartsAt.Equal(instant) {
			return true
		}
	}
	return false
}
