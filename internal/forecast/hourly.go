package forecast

import (
	"sort"
	"time"
)

const (
	// LookAhead caps how far the hourly view extends past the current hour.
	LookAhead = 12 * time.Hour

	// Below lowBand the earlier sample supplies icon and description, above
	// highBand the later one does. The middle band stays with the earlier
	// sample because text cannot be interpolated.
	lowBand  = 0.3
	highBand = 0.7

	minSmoothingSamples = 3
)

// Hourly is one synthesized hourly tick.
type Hourly struct {
	Timestamp   int64     `json:"ts"` // epoch millis
	Time        time.Time `json:"time"`
	Temperature int       `json:"temp"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

// SynthesizeHourly derives an hourly series from 3-hour samples, starting at
// the hour containing now and ending at the earlier of now+12h and the last
// sample. Day and night are judged in now's location. The result depends
// only on its inputs.
func SynthesizeHourly(samples []Sample, now time.Time) []Hourly {
	loc := now.Location()
	nowMs := now.UnixMilli()

	upcoming := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.millis() >= nowMs {
			upcoming = append(upcoming, s)
		}
	}
	if len(upcoming) == 0 {
		return []Hourly{}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Timestamp < upcoming[j].Timestamp
	})

	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, loc)
	startMs := start.UnixMilli()
	endMs := min(startMs+LookAhead.Milliseconds(), upcoming[len(upcoming)-1].millis())
	step := time.Hour.Milliseconds()

	hourly := make([]Hourly, 0, int(LookAhead/time.Hour)+1)
	for ts := startMs; ts <= endMs; ts += step {
		hourly = append(hourly, tick(upcoming, ts, loc))
	}

	if len(upcoming) >= minSmoothingSamples {
		smoothTemperatures(hourly)
	}
	deflicker(hourly)
	return hourly
}

func tick(sorted []Sample, ts int64, loc *time.Location) Hourly {
	prev, next := bracket(sorted, ts)

	span := max(next.millis()-prev.millis(), 1)
	ratio := float64(ts-prev.millis()) / float64(span)
	ratio = min(max(ratio, 0), 1)

	temp := prev.Temperature + (next.Temperature-prev.Temperature)*ratio

	src := prev
	if ratio > highBand {
		src = next
	}

	at := time.UnixMilli(ts).In(loc)
	return Hourly{
		Timestamp:   ts,
		Time:        at,
		Temperature: Round(temp),
		Icon:        withDaylight(src.icon(), at.Hour()),
		Description: Capitalize(src.Description),
	}
}

// bracket finds the latest sample at or before ts and the earliest at or
// after it, falling back to the first and last samples.
func bracket(sorted []Sample, ts int64) (prev, next Sample) {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].millis() >= ts })

	if i < len(sorted) {
		next = sorted[i]
	} else {
		next = sorted[len(sorted)-1]
	}

	switch {
	case i < len(sorted) && sorted[i].millis() == ts:
		prev = sorted[i]
	case i > 0:
		prev = sorted[i-1]
	default:
		prev = sorted[0]
	}
	return prev, next
}

// smoothTemperatures averages each interior value with its neighbours, using
// the values from before this pass.
func smoothTemperatures(h []Hourly) {
	if len(h) < 3 {
		return
	}
	orig := make([]int, len(h))
	for i := range h {
		orig[i] = h[i].Temperature
	}
	for i := 1; i < len(h)-1; i++ {
		h[i].Temperature = Round(float64(orig[i-1]+orig[i]+orig[i+1]) / 3)
	}
}

// deflicker replaces a description that differs from both neighbours with
// the previous tick's description and icon.
func deflicker(h []Hourly) {
	for i := 1; i < len(h)-1; i++ {
		if h[i].Description != h[i-1].Description && h[i].Description != h[i+1].Description {
			h[i].Description = h[i-1].Description
			h[i].Icon = h[i-1].Icon
		}
	}
}
