// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import "github.com/danielhkuo/tribedates/models"

// Tally is the aggregated yes/no count for one date option. Undecided
// votes and missing entries count toward neither side.
type Tally struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// TallyVotes computes one tally per entry in ev.Dates. A participant whose
// vote array is shorter than the dates list is simply absent from the
// counts at the indices it does not cover; it is never read past its
// length and never defaulted to undecided.
func TallyVotes(ev models.Event) []Tally {
	tallies := make([]Tally, len(ev.Dates))
	for _, p := range ev.Participants {
		for i := range tallies {
			if i >= len(p.Votes) {
				break
			}
			switch p.Votes[i] {
			case models.VoteYes:
				tallies[i].Yes++
			case models.VoteNo:
				tallies[i].No++
			}
		}
	}
	return tallies
}

// BestOptions returns the indices of every option achieving the maximum
// yes count, in ascending order. When nobody voted yes for anything there
// is no best option and the result is empty. The result is never nil so
// it serializes as [] rather than null.
func BestOptions(tallies []Tally) []int {
	max := 0
	for _, t := range tallies {
		if t.Yes > max {
			max = t.Yes
		}
	}
	best := []int{}
	if max == 0 {
		return best
	}
	for i, t := range tallies {
		if t.Yes == max {
			best = append(best, i)
		}
	}
	return best
}

// DisplayRows flattens tallies into display-ready rows, one per specific
// date or range, and one per weekday inside a day-of-week option. All
// weekday rows of a day-of-week option repeat that option's single tally:
// the fan-out is display-time only, the option still owns one vote slot.
func DisplayRows(ev models.Event, tallies []Tally, best []int) []models.TallyRow {
	bestSet := make(map[int]bool, len(best))
	for _, i := range best {
		bestSet[i] = true
	}

	rows := []models.TallyRow{}
	for i, opt := range ev.Dates {
		var t Tally
		if i < len(tallies) {
			t = tallies[i]
		}
		if opt.IsDayOfWeek() {
			for _, day := range opt.Days {
				rows = append(rows, models.TallyRow{
					Index: i,
					Label: day,
					Yes:   t.Yes,
					No:    t.No,
					Best:  bestSet[i],
				})
			}
			continue
		}
		rows = append(rows, models.TallyRow{
			Index: i,
			Label: opt.DisplayRange,
			Yes:   t.Yes,
			No:    t.No,
			Best:  bestSet[i],
		})
	}
	return rows
}
