// Package timeline derives calendar views and aggregates from the flat
// activity log. Everything here is pure: it is recomputed on read and
// never stored.
package timeline

import (
	"time"

	"github.com/sadopc/chronoflow/internal/track"
)

const (
	// MinutesPerDay is where a day column ends; blocks that cross
	// midnight stay in their start day and overflow past this mark.
	MinutesPerDay = 1440

	// MinRenderMinutes is the smallest visual height of a block. Only
	// rendering uses it; aggregation always takes the exact duration.
	MinRenderMinutes = 5.0
)

// DateKey formats t as its local calendar date, YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Block is an activity positioned inside its start day's column.
type Block struct {
	Activity      track.Activity
	Date          string  // local calendar date of the start time
	StartMinute   int     // minute of day of the start time
	Minutes       float64 // exact duration in minutes
	RenderMinutes float64 // duration floored to MinRenderMinutes
}

// BlockFor positions a single activity. An activity is bucketed under
// the local date of its start time regardless of where it ends. For a
// still-running activity the effective end is min(now, end of the
// start day): rendering never extrapolates past its own column.
func BlockFor(a track.Activity, now time.Time) Block {
	start := a.StartAt()
	dayEnd := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).AddDate(0, 0, 1)

	var end time.Time
	if a.Running() {
		end = now
		if end.After(dayEnd) {
			end = dayEnd
		}
	} else {
		end = a.EndAt()
	}
	if end.Before(start) {
		end = start
	}

	minutes := end.Sub(start).Minutes()
	render := minutes
	if render < MinRenderMinutes {
		render = MinRenderMinutes
	}

	return Block{
		Activity:      a,
		Date:          DateKey(start),
		StartMinute:   start.Hour()*60 + start.Minute(),
		Minutes:       minutes,
		RenderMinutes: render,
	}
}

// Partition buckets activities under each requested date by the local
// date of their start time. Every requested date gets a bucket; dates
// with no activities yield an empty, non-nil slice.
func Partition(activities []track.Activity, dates []string) map[string][]track.Activity {
	buckets := make(map[string][]track.Activity, len(dates))
	for _, d := range dates {
		buckets[d] = []track.Activity{}
	}
	for _, a := range activities {
		key := DateKey(a.StartAt())
		if bucket, ok := buckets[key]; ok {
			buckets[key] = append(bucket, a)
		}
	}
	return buckets
}

// DayBlocks positions every activity whose start date matches date,
// ordered by start minute.
func DayBlocks(activities []track.Activity, date string, now time.Time) []Block {
	var blocks []Block
	for _, a := range activities {
		if DateKey(a.StartAt()) != date {
			continue
		}
		blocks = append(blocks, BlockFor(a, now))
	}
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && blocks[j].StartMinute < blocks[j-1].StartMinute; j-- {
			blocks[j], blocks[j-1] = blocks[j-1], blocks[j]
		}
	}
	return blocks
}
