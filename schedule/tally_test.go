// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/tribedates/models"
)

func twoOptionEvent() models.Event {
	dates, _ := BuildOptions([]models.DateOptionInput{
		{Start: "2024-06-01"},
		{Start: "2024-06-10", End: "2024-06-12"},
	})
	return models.Event{
		Title: "Test Event",
		Type:  EventType(dates),
		Dates: dates,
		Participants: map[string]models.ParticipantResponse{
			"Alice": {Votes: []int{models.VoteYes, models.VoteNo}},
			"Bob":   {Votes: []int{models.VoteYes, models.VoteYes}},
		},
	}
}

func TestTallyVotes(t *testing.T) {
	ev := twoOptionEvent()

	tallies := TallyVotes(ev)
	if len(tallies) != 2 {
		t.Fatalf("Expected 2 tallies, got %d", len(tallies))
	}

	// June 1: both yes. Range: Bob yes, Alice no.
	if tallies[0].Yes != 2 || tallies[0].No != 0 {
		t.Errorf("Option 0: expected 2 yes / 0 no, got %d / %d", tallies[0].Yes, tallies[0].No)
	}
	if tallies[1].Yes != 1 || tallies[1].No != 1 {
		t.Errorf("Option 1: expected 1 yes / 1 no, got %d / %d", tallies[1].Yes, tallies[1].No)
	}
}

func TestTallyVotesUndecidedCountsNeither(t *testing.T) {
	ev := twoOptionEvent()
	ev.Participants["Carol"] = models.ParticipantResponse{
		Votes: []int{models.VoteUndecided, models.VoteUndecided},
	}

	tallies := TallyVotes(ev)
	if tallies[0].Yes != 2 || tallies[0].No != 0 {
		t.Errorf("Undecided vote changed the tally: %+v", tallies[0])
	}
}

func TestTallyVotesShortArrayStopsEarly(t *testing.T) {
	ev := twoOptionEvent()
	// Dave only covers the first option; the second gets nothing from him.
	ev.Participants["Dave"] = models.ParticipantResponse{Votes: []int{models.VoteNo}}

	tallies := TallyVotes(ev)
	if tallies[0].No != 1 {
		t.Errorf("Expected Dave's no on option 0, got %d", tallies[0].No)
	}
	if tallies[1].Yes != 1 || tallies[1].No != 1 {
		t.Errorf("Short array must not affect option 1, got %+v", tallies[1])
	}
}

func TestTallyVotesNoParticipants(t *testing.T) {
	ev := twoOptionEvent()
	ev.Participants = nil

	tallies := TallyVotes(ev)
	if len(tallies) != 2 {
		t.Fatalf("Expected 2 zero tallies, got %d", len(tallies))
	}
	for i, tl := range tallies {
		if tl.Yes != 0 || tl.No != 0 {
			t.Errorf("Tally %d not zero: %+v", i, tl)
		}
	}
}

func TestBestOptions(t *testing.T) {
	tests := []struct {
		name    string
		tallies []Tally
		want    []int
	}{
		{"single winner", []Tally{{Yes: 2}, {Yes: 1, No: 1}}, []int{0}},
		{"tie keeps all", []Tally{{Yes: 2}, {Yes: 2}, {Yes: 1}}, []int{0, 1}},
		{"no yes votes means no best", []Tally{{No: 3}, {No: 1}}, []int{}},
		{"empty", nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BestOptions(tt.tallies)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDisplayRowsFansOutWeekdays(t *testing.T) {
	dates, _ := BuildOptions([]models.DateOptionInput{
		{Start: "2024-06-01"},
		{Type: models.TypeDayOfWeek, Days: []string{"Monday", "Friday"}},
	})
	ev := models.Event{
		Dates: dates,
		Participants: map[string]models.ParticipantResponse{
			"Alice": {Votes: []int{models.VoteNo, models.VoteYes}},
		},
	}

	tallies := TallyVotes(ev)
	best := BestOptions(tallies)
	rows := DisplayRows(ev, tallies, best)

	// One row for June 1, one per weekday of the day-of-week option.
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].Label != "06/01/24" || rows[0].Index != 0 {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].Label != "Monday" || rows[2].Label != "Friday" {
		t.Errorf("Expected weekday rows, got %q and %q", rows[1].Label, rows[2].Label)
	}

	// Both weekday rows repeat the option's single tally and best flag.
	for _, row := range rows[1:] {
		if row.Index != 1 {
			t.Errorf("Weekday row should keep the option index 1, got %d", row.Index)
		}
		if row.Yes != 1 || row.No != 0 {
			t.Errorf("Weekday row should share the option tally, got %+v", row)
		}
		if !row.Best {
			t.Error("Weekday rows of the best option should all be flagged best")
		}
	}
	if rows[0].Best {
		t.Error("Option with no yes votes must not be best")
	}
}
