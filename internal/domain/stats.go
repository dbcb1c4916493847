package domain

import (
	"fmt"
	"time"
)

// PeakStatistics is the most common registration hour and, when tracked, weekday.
type PeakStatistics struct {
	Hour       int
	HourCount  int
	Weekday    time.Weekday
	DayCount   int
	HasWeekday bool
	Samples    int
}

// WeekdayName returns the Sunday-first English name of the peak weekday.
func (p PeakStatistics) WeekdayName() string {
	return p.Weekday.String()
}

// String renders the final statistics line.
func (p PeakStatistics) String() string {
	if !p.HasWeekday {
		return fmt.Sprintf("Peak registration hour is %d.", p.Hour)
	}
	return fmt.Sprintf("Peak registration hour is %d and the peak day of the week is %s.", p.Hour, p.WeekdayName())
}

// Aggregator accumulates registration hours and weekdays over a run.
type Aggregator struct {
	trackWeekday bool
	hours        []int
	days         []int
}

// NewAggregator creates an Aggregator. Weekdays are recorded only when trackWeekday is set.
func NewAggregator(trackWeekday bool) *Aggregator {
	return &Aggregator{trackWeekday: trackWeekday}
}

// Add records one parsed registration.
func (a *Aggregator) Add(m RegistrationMoment) {
	a.hours = append(a.hours, m.Hour())
	if a.trackWeekday {
		a.days = append(a.days, int(m.Weekday()))
	}
}

// Len returns the number of recorded registrations.
func (a *Aggregator) Len() int { return len(a.hours) }

// Peaks computes the peak hour and weekday. It returns false when nothing was recorded.
func (a *Aggregator) Peaks() (PeakStatistics, bool) {
	hour, hourCount, ok := Mode(a.hours)
	if !ok {
		return PeakStatistics{}, false
	}

	stats := PeakStatistics{Hour: hour, HourCount: hourCount, Samples: len(a.hours)}
	if day, dayCount, ok := Mode(a.days); ok {
		stats.Weekday = time.Weekday(day)
		stats.DayCount = dayCount
		stats.HasWeekday = true
	}
	return stats, true
}

// Mode returns the most frequent value in values and its count.
// Ties go to the value that appeared first in values.
func Mode(values []int) (value, count int, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}

	counts := make(map[int]int, len(values))
	order := make([]int, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	for _, v := range order {
		if counts[v] > count {
			value, count = v, counts[v]
		}
	}
	return value, count, true
}
