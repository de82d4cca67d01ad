package aggregate

import (
	"strconv"

	"github.com/starford/daybook/internal/localdate"
)

// shortRange is the longest range labelled with month and day.
const shortRange = 7

// ChartLabel renders an x-axis label: "Jan 2" for short ranges, the bare day
// number for longer ones. Unparseable dates are returned unchanged.
func ChartLabel(date string, rangeLen int) string {
	t, err := localdate.Parse(date)
	if err != nil {
		return date
	}
	if rangeLen > shortRange {
		return strconv.Itoa(t.Day())
	}
	return t.Format("Jan 2")
}
