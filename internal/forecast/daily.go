package forecast

import (
	"math"
	"sort"
	"time"
)

// MaxDays is the number of day cards the widget shows.
const MaxDays = 5

// DailySummary condenses one calendar day of samples.
type DailySummary struct {
	Day         string    `json:"day"`  // YYYY-MM-DD, UTC
	Date        time.Time `json:"date"` // local midnight of the first sample
	Min         int       `json:"min"`
	Max         int       `json:"max"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

type dayBucket struct {
	date     time.Time
	min, max float64
	first    Sample
	noon     *Sample
	noonDiff int
}

// DailySummaries groups samples by UTC date and returns at most maxDays
// days in ascending order. Each day's icon and description come from the
// sample whose local hour is closest to noon.
func DailySummaries(samples []Sample, loc *time.Location, maxDays int) []DailySummary {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]*dayBucket)
	for _, s := range samples {
		utc := time.Unix(s.Timestamp, 0).UTC()
		key := utc.Format(time.DateOnly)
		local := utc.In(loc)

		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{
				date:  time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
				min:   math.Inf(1),
				max:   math.Inf(-1),
				first: s,
			}
			buckets[key] = b
		}

		b.min = math.Min(b.min, s.Temperature)
		b.max = math.Max(b.max, s.Temperature)

		diff := 12 - local.Hour()
		if diff < 0 {
			diff = -diff
		}
		if b.noon == nil || diff < b.noonDiff {
			picked := s
			b.noon = &picked
			b.noonDiff = diff
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if maxDays > 0 && len(keys) > maxDays {
		keys = keys[:maxDays]
	}

	out := make([]DailySummary, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		rep := b.first
		if b.noon != nil {
			rep = *b.noon
		}
		desc := rep.Description
		if desc == "" {
			desc = b.first.Description
		}
		out = append(out, DailySummary{
			Day:         k,
			Date:        b.date,
			Min:         Round(b.min),
			Max:         Round(b.max),
			Icon:        rep.icon(),
			Description: Capitalize(desc),
		})
	}
	return out
}
