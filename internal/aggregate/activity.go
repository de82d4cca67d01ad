package aggregate

import (
	"cmp"
	"math"
	"slices"

	"github.com/starford/daybook/internal/activitytime"
	"github.com/starford/daybook/internal/models"
	"github.com/starford/daybook/internal/palette"
)

// TopActivities caps the time-spent ranking.
const TopActivities = 8

// Minutes is the activity's explicit duration, or end minus start when no
// positive duration is recorded. Zero when neither is usable.
func Minutes(a models.Activity) int {
	if a.Duration != nil && *a.Duration > 0 {
		return *a.Duration
	}
	if m, ok := activitytime.SpanMinutes(a.StartTime, a.EndTime); ok {
		return m
	}
	return 0
}

// TimeSpent is total time per activity name.
type TimeSpent struct {
	Name    string  `json:"name"`
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
	Color   string  `json:"color"`
	Hex     string  `json:"hex"`
}

// TimeByActivityName ranks names by total hours (one decimal), dropping
// names that round to zero. Ties are ordered by name.
func TimeByActivityName(activities []models.Activity) []TimeSpent {
	totals := make(map[string]int)
	for _, a := range activities {
		totals[a.Name] += Minutes(a)
	}
	out := make([]TimeSpent, 0, len(totals))
	for name, m := range totals {
		h := math.Round(float64(m)/60*10) / 10
		if h <= 0 {
			continue
		}
		c := palette.ForName(name)
		out = append(out, TimeSpent{Name: name, Minutes: m, Hours: h, Color: c.String(), Hex: c.Hex()})
	}
	slices.SortFunc(out, func(a, b TimeSpent) int {
		if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(out) > TopActivities {
		out = out[:TopActivities]
	}
	return out
}

// TimelineSegment places one timed activity on a 24-hour scale.
type TimelineSegment struct {
	Activity     models.Activity `json:"activity"`
	StartPercent float64         `json:"startPercent"`
	WidthPercent float64         `json:"widthPercent"`
	Color        string          `json:"color"`
	Hex          string          `json:"hex"`
	Style        palette.Style   `json:"style"`
}

// spanning returns the activities with a usable start/end pair, latest
// start first.
func spanning(activities []models.Activity) []models.Activity {
	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if _, ok := activitytime.SpanMinutes(a.StartTime, a.EndTime); ok {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Activity) int {
		return activitytime.CompareDesc(a.StartTime, b.StartTime)
	})
	return out
}

// BuildTimeline projects timed activities onto percentages of the day.
// Activities missing either time, or whose end is not after the start, are
// left out.
func BuildTimeline(activities []models.Activity) []TimelineSegment {
	timed := spanning(activities)
	out := make([]TimelineSegment, 0, len(timed))
	for _, a := range timed {
		start := activitytime.SortKey(a.StartTime)
		width, _ := activitytime.SpanMinutes(a.StartTime, a.EndTime)
		c := palette.ForName(a.Name)
		out = append(out, TimelineSegment{
			Activity:     a,
			StartPercent: float64(start) / activitytime.MinutesPerDay * 100,
			WidthPercent: float64(width) / activitytime.MinutesPerDay * 100,
			Color:        c.String(),
			Hex:          c.Hex(),
			Style:        c.Style(),
		})
	}
	return out
}

// ActivityGroup is the timed activities sharing a name, latest first.
type ActivityGroup struct {
	Name       string            `json:"name"`
	Color      string            `json:"color"`
	Hex        string            `json:"hex"`
	Activities []models.Activity `json:"activities"`
}

// GroupActivitiesByName buckets timed activities by name. Groups are ordered
// by their latest member, so the group holding the day's most recent
// activity comes first.
func GroupActivitiesByName(activities []models.Activity) []ActivityGroup {
	var out []ActivityGroup
	index := make(map[string]int)
	// Walking latest-first means a name's first sighting is its latest
	// member, so groups are created already in order.
	for _, a := range spanning(activities) {
		i, ok := index[a.Name]
		if !ok {
			i = len(out)
			index[a.Name] = i
			c := palette.ForName(a.Name)
			out = append(out, ActivityGroup{Name: a.Name, Color: c.String(), Hex: c.Hex()})
		}
		out[i].Activities = append(out[i].Activities, a)
	}
	return out
}
