package intent

import "time"

// Season is an Indian cropping season derived from the calendar month
type Season string

const (
	SeasonKharif Season = "kharif"
	SeasonRabi   Season = "rabi"
	SeasonZaid   Season = "zaid"
)

// SeasonOf maps a date to its cropping season: kharif for the monsoon
// months (June-September), zaid for the short summer window (April-May),
// rabi for the rest.
func SeasonOf(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.June && m <= time.September:
		return SeasonKharif
	case m == time.April || m == time.May:
		return SeasonZaid
	default:
		return SeasonRabi
	}
}
