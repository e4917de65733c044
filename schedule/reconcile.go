// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import "github.com/danielhkuo/tribedates/models"

// ReconcileVotes adjusts every participant's vote array to length n:
// shorter arrays are right-padded with undecided, longer arrays are
// truncated. The first min(len, n) entries keep their original values and
// order.
//
// Reconciliation is positional. Removing an option from the middle of the
// list shifts every later option down one index, so surviving votes are
// reattributed to whatever option now occupies their index. Callers
// editing a dates list must account for this.
func ReconcileVotes(participants map[string]models.ParticipantResponse, n int) map[string]models.ParticipantResponse {
	out := make(map[string]models.ParticipantResponse, len(participants))
	for name, p := range participants {
		votes := make([]int, 0, n)
		votes = append(votes, p.Votes...)
		for len(votes) < n {
			votes = append(votes, models.VoteUndecided)
		}
		p.Votes = votes[:n]
		out[name] = p
	}
	return out
}

// ApplyDates returns ev with its dates list replaced and every participant
// vote array reconciled to the new length. Created is preserved and the
// type discriminant re-derived.
func ApplyDates(ev models.Event, dates []models.DateOption) models.Event {
	ev.Dates = dates
	ev.Type = EventType(dates)
	ev.Participants = ReconcileVotes(ev.Participants, len(dates))
	return ev
}
