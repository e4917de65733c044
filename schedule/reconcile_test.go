// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"reflect"
	"testing"

	"github.com/danielhkuo/tribedates/models"
)

func TestReconcileVotesPadsWithUndecided(t *testing.T) {
	participants := map[string]models.ParticipantResponse{
		"Alice": {Votes: []int{models.VoteYes, models.VoteNo}},
		"Bob":   {Votes: []int{models.VoteYes, models.VoteYes}, MemberID: "p1"},
	}

	out := ReconcileVotes(participants, 3)

	if got := out["Alice"].Votes; !reflect.DeepEqual(got, []int{2, 0, 1}) {
		t.Errorf("Alice: expected [2 0 1], got %v", got)
	}
	if got := out["Bob"].Votes; !reflect.DeepEqual(got, []int{2, 2, 1}) {
		t.Errorf("Bob: expected [2 2 1], got %v", got)
	}
	if out["Bob"].MemberID != "p1" {
		t.Error("MemberID must survive reconciliation")
	}
}

func TestReconcileVotesTruncates(t *testing.T) {
	participants := map[string]models.ParticipantResponse{
		"Alice": {Votes: []int{models.VoteYes, models.VoteNo, models.VoteUndecided}},
	}

	out := ReconcileVotes(participants, 2)

	if got := out["Alice"].Votes; !reflect.DeepEqual(got, []int{2, 0}) {
		t.Errorf("Expected [2 0], got %v", got)
	}
}

func TestReconcileVotesDoesNotMutateInput(t *testing.T) {
	original := []int{models.VoteYes}
	participants := map[string]models.ParticipantResponse{
		"Alice": {Votes: original},
	}

	out := ReconcileVotes(participants, 3)
	out["Alice"].Votes[0] = models.VoteNo

	if original[0] != models.VoteYes {
		t.Error("ReconcileVotes must copy vote arrays, not alias them")
	}
}

func TestApplyDatesAppendOption(t *testing.T) {
	ev := twoOptionEvent()
	created := ev.Created

	dates, _ := BuildOptions([]models.DateOptionInput{
		{Start: "2024-06-01"},
		{Start: "2024-06-10", End: "2024-06-12"},
		{Start: "2024-06-20"},
	})
	ev = ApplyDates(ev, dates)

	if len(ev.Dates) != 3 {
		t.Fatalf("Expected 3 dates, got %d", len(ev.Dates))
	}
	// Existing votes keep their positions, the new slot defaults undecided.
	if got := ev.Participants["Alice"].Votes; !reflect.DeepEqual(got, []int{2, 0, 1}) {
		t.Errorf("Alice: expected [2 0 1], got %v", got)
	}
	if got := ev.Participants["Bob"].Votes; !reflect.DeepEqual(got, []int{2, 2, 1}) {
		t.Errorf("Bob: expected [2 2 1], got %v", got)
	}
	if ev.Created != created {
		t.Error("ApplyDates must not touch Created")
	}
}

func TestApplyDatesRemoveFirstOption(t *testing.T) {
	ev := twoOptionEvent()

	// Drop the first option: positional reconciliation truncates to the new
	// length, so each participant keeps the first len(dates) entries. The
	// vote that used to belong to the removed option now counts for the
	// option that shifted into index 0.
	dates, _ := BuildOptions([]models.DateOptionInput{
		{Start: "2024-06-10", End: "2024-06-12"},
	})
	ev = ApplyDates(ev, dates)

	if got := ev.Participants["Alice"].Votes; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Alice: expected [2], got %v", got)
	}
	if got := ev.Participants["Bob"].Votes; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Bob: expected [2], got %v", got)
	}
}

func TestApplyDatesRederivesType(t *testing.T) {
	ev := twoOptionEvent()

	dates, _ := BuildOptions([]models.DateOptionInput{
		{Type: models.TypeDayOfWeek, Days: []string{"Saturday"}},
	})
	ev = ApplyDates(ev, dates)

	if ev.Type != models.TypeDayOfWeek {
		t.Errorf("Expected type %s, got %s", models.TypeDayOfWeek, ev.Type)
	}
}
