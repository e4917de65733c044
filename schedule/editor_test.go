// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"errors"
	"testing"

	"github.com/danielhkuo/tribedates/models"
)

func TestAddSpecific(t *testing.T) {
	e := NewEditor(nil)

	if err := e.AddSpecific("2024-06-01"); err != nil {
		t.Fatalf("AddSpecific failed: %v", err)
	}
	if e.Len() != 1 {
		t.Fatalf("Expected 1 option, got %d", e.Len())
	}

	opt := e.Options()[0]
	if opt.Start != "2024-06-01" || opt.End != "2024-06-01" {
		t.Errorf("Expected start and end 2024-06-01, got %s / %s", opt.Start, opt.End)
	}
	if opt.ID == "" {
		t.Error("Expected a generated option id")
	}
	if opt.DisplayRange != "06/01/24" {
		t.Errorf("Expected display 06/01/24, got %s", opt.DisplayRange)
	}
}

func TestAddSpecificDuplicateIsNoOp(t *testing.T) {
	e := NewEditor(nil)

	if err := e.AddSpecific("2024-06-01"); err != nil {
		t.Fatalf("AddSpecific failed: %v", err)
	}
	if err := e.AddSpecific("2024-06-01"); err != nil {
		t.Fatalf("Duplicate AddSpecific should succeed silently: %v", err)
	}
	if e.Len() != 1 {
		t.Errorf("Expected duplicate to be dropped, got %d options", e.Len())
	}
}

func TestAddRangeValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"missing start", "", "2024-06-10", ErrMissingStart},
		{"end before start", "2024-06-10", "2024-06-01", ErrEndBeforeStart},
		{"bad start format", "June 1", "2024-06-10", ErrBadDate},
		{"bad end format", "2024-06-01", "next week", ErrBadDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(nil)
			err := e.AddRange(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if e.Len() != 0 {
				t.Errorf("Rejected range must not be stored, got %d options", e.Len())
			}
		})
	}
}

func TestAddRangeDisplayLabel(t *testing.T) {
	e := NewEditor(nil)
	if err := e.AddRange("2024-06-10", "2024-06-12"); err != nil {
		t.Fatalf("AddRange failed: %v", err)
	}

	opt := e.Options()[0]
	if opt.DisplayRange != "06/10/24 to 06/12/24" {
		t.Errorf("Expected range label, got %s", opt.DisplayRange)
	}
}

func TestAddDaysOfWeekReplacesExisting(t *testing.T) {
	e := NewEditor(nil)

	if err := e.AddDaysOfWeek([]string{"Monday", "Wednesday"}); err != nil {
		t.Fatalf("AddDaysOfWeek failed: %v", err)
	}
	if err := e.AddSpecific("2024-06-01"); err != nil {
		t.Fatalf("AddSpecific failed: %v", err)
	}
	// Second selection replaces the first day-of-week option entirely
	if err := e.AddDaysOfWeek([]string{"Friday"}); err != nil {
		t.Fatalf("AddDaysOfWeek failed: %v", err)
	}

	if e.Len() != 2 {
		t.Fatalf("Expected 2 options (one specific, one dayOfWeek), got %d", e.Len())
	}

	var dow *models.DateOption
	for i, opt := range e.Options() {
		if opt.IsDayOfWeek() {
			if dow != nil {
				t.Fatal("Found more than one day-of-week option")
			}
			o := e.Options()[i]
			dow = &o
		}
	}
	if dow == nil {
		t.Fatal("Day-of-week option missing")
	}
	if len(dow.Days) != 1 || dow.Days[0] != "Friday" {
		t.Errorf("Expected replacement selection [Friday], got %v", dow.Days)
	}
}

func TestAddDaysOfWeekValidation(t *testing.T) {
	e := NewEditor(nil)

	if err := e.AddDaysOfWeek(nil); !errors.Is(err, ErrNoDaysSelected) {
		t.Errorf("Expected ErrNoDaysSelected, got %v", err)
	}
	if err := e.AddDaysOfWeek([]string{"Funday"}); err == nil {
		t.Error("Expected error for unknown weekday")
	}

	// Repeated days collapse into one
	if err := e.AddDaysOfWeek([]string{"Monday", "Monday", "Tuesday"}); err != nil {
		t.Fatalf("AddDaysOfWeek failed: %v", err)
	}
	if got := e.Options()[0].Days; len(got) != 2 {
		t.Errorf("Expected deduped days [Monday Tuesday], got %v", got)
	}
}

func TestRemove(t *testing.T) {
	e := NewEditor(nil)
	if err := e.AddSpecific("2024-06-01"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddRange("2024-06-10", "2024-06-12"); err != nil {
		t.Fatal(err)
	}
	if err := e.AddDaysOfWeek([]string{"Saturday"}); err != nil {
		t.Fatal(err)
	}

	e.Remove("2024-06-10", "2024-06-12")
	if e.Len() != 2 {
		t.Fatalf("Expected 2 options after removing range, got %d", e.Len())
	}

	// Sentinel key drops the day-of-week option regardless of its days
	e.Remove(DayOfWeekKey, "")
	if e.Len() != 1 {
		t.Fatalf("Expected 1 option after removing dayOfWeek, got %d", e.Len())
	}
	if e.Options()[0].Start != "2024-06-01" {
		t.Errorf("Wrong option survived: %+v", e.Options()[0])
	}

	// Removing an absent key is a no-op
	e.Remove("2030-01-01", "2030-01-02")
	if e.Len() != 1 {
		t.Errorf("Remove of absent key changed the list, got %d options", e.Len())
	}
}

func TestBuildOptions(t *testing.T) {
	dates, err := BuildOptions([]models.DateOptionInput{
		{Start: "2024-06-01"},
		{Start: "2024-06-10", End: "2024-06-12"},
		{Type: models.TypeDayOfWeek, Days: []string{"Monday", "Friday"}},
	})
	if err != nil {
		t.Fatalf("BuildOptions failed: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("Expected 3 options, got %d", len(dates))
	}
	if !dates[0].IsSpecific() {
		t.Error("First option should be specific")
	}
	if dates[1].IsSpecific() || dates[1].IsDayOfWeek() {
		t.Error("Second option should be a range")
	}
	if !dates[2].IsDayOfWeek() {
		t.Error("Third option should be dayOfWeek")
	}
}

func TestBuildOptionsRejectsBadInput(t *testing.T) {
	_, err := BuildOptions([]models.DateOptionInput{
		{Start: "2024-06-10", End: "2024-06-01"},
	})
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Errorf("Expected ErrEndBeforeStart, got %v", err)
	}
}

func TestEventType(t *testing.T) {
	specific, _ := BuildOptions([]models.DateOptionInput{{Start: "2024-06-01"}})
	ranged, _ := BuildOptions([]models.DateOptionInput{{Start: "2024-06-01", End: "2024-06-03"}})
	dow, _ := BuildOptions([]models.DateOptionInput{{Type: models.TypeDayOfWeek, Days: []string{"Sunday"}}})

	if got := EventType(specific); got != models.TypeSpecific {
		t.Errorf("Expected %s, got %s", models.TypeSpecific, got)
	}
	if got := EventType(ranged); got != models.TypeRange {
		t.Errorf("Expected %s, got %s", models.TypeRange, got)
	}
	if got := EventType(dow); got != models.TypeDayOfWeek {
		t.Errorf("Expected %s, got %s", models.TypeDayOfWeek, got)
	}
	if got := EventType(nil); got != models.TypeSpecific {
		t.Errorf("Expected empty list to default to %s, got %s", models.TypeSpecific, got)
	}
}
