package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/sadopc/chronoflow/internal/track"
)

// CategoryTotal is the summed tracked time involving one category.
type CategoryTotal struct {
	Category track.Category
	Hours    float64
}

// DaySeries is one day of per-category hours. Every registry category
// is present in Hours (zero when untracked), keyed by name, so
// consumers can index without existence checks.
type DaySeries struct {
	Date  string // YYYY-MM-DD
	Label string // short display label, e.g. "Mar 1"
	Hours map[string]float64
}

// Totals sums full durations per category over the given activities.
// Running activities are skipped. An activity tagged with several
// categories credits its whole duration to each of them, so totals
// answer "how much time involved X" and need not sum to tracked time.
// Output is sorted by hours descending; ties keep registry order.
func Totals(activities []track.Activity, categories []track.Category) []CategoryTotal {
	hours := make(map[string]float64)
	firstSeen := make(map[string]int) // tie-break order for dangling ids
	seq := 0

	for _, a := range activities {
		if a.Running() {
			continue
		}
		h := a.Duration(time.Time{}).Hours()
		for _, id := range a.CategoryIDs {
			hours[id] += h
			if _, ok := firstSeen[id]; !ok {
				firstSeen[id] = seq
				seq++
			}
		}
	}

	registry := make(map[string]track.Category, len(categories))
	order := make(map[string]int, len(categories))
	for i, c := range categories {
		registry[c.ID] = c
		order[c.ID] = i
	}

	totals := make([]CategoryTotal, 0, len(hours))
	for id, h := range hours {
		cat, ok := registry[id]
		if !ok {
			cat = track.Category{ID: id, Name: track.Unknown.Name, Color: track.Unknown.Color}
		}
		totals = append(totals, CategoryTotal{Category: cat, Hours: round2(h)})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Hours != totals[j].Hours {
			return totals[i].Hours > totals[j].Hours
		}
		return tieRank(totals[i].Category.ID, order, firstSeen) < tieRank(totals[j].Category.ID, order, firstSeen)
	})
	return totals
}

// tieRank orders registry categories by definition order and places
// dangling ids after them in first-seen order.
func tieRank(id string, order, firstSeen map[string]int) int {
	if r, ok := order[id]; ok {
		return r
	}
	return len(order) + firstSeen[id]
}

// LastNDays builds the trailing n-day per-category series ending today
// (local time). Running activities are excluded; multi-category
// activities take the same full-credit rule as Totals.
func LastNDays(activities []track.Activity, categories []track.Category, n int, now time.Time) []DaySeries {
	series := make([]DaySeries, 0, n)
	index := make(map[string]int, n)
	for i := n - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := DateKey(d)
		hours := make(map[string]float64, len(categories))
		for _, c := range categories {
			hours[c.Name] = 0
		}
		index[key] = len(series)
		series = append(series, DaySeries{
			Date:  key,
			Label: d.Format("Jan 2"),
			Hours: hours,
		})
	}

	for _, a := range activities {
		if a.Running() {
			continue
		}
		i, ok := index[DateKey(a.StartAt())]
		if !ok {
			continue
		}
		h := a.Duration(time.Time{}).Hours()
		for _, c := range track.Resolve(categories, a.CategoryIDs) {
			series[i].Hours[c.Name] += h
		}
	}

	// Round only when handing the summary out.
	for _, day := range series {
		for name, h := range day.Hours {
			day.Hours[name] = round2(h)
		}
	}
	return series
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
