// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/tribedates/models"
)

var (
	ErrMissingStart   = errors.New("start date is required")
	ErrEndBeforeStart = errors.New("end date must not be before start date")
	ErrBadDate        = errors.New("date must be YYYY-MM-DD")
	ErrNoDaysSelected = errors.New("at least one weekday must be selected")
)

// DayOfWeekKey is the sentinel Remove key for the day-of-week option.
// It removes that option regardless of which weekdays it holds.
const DayOfWeekKey = "dayOfWeek"

// Editor maintains the in-progress ordered list of date options during
// event authoring. It holds any number of specific/range options, deduped
// by (start, end), and at most one day-of-week option.
type Editor struct {
	options []models.DateOption
}

// NewEditor returns an editor preloaded with existing options, as when an
// event is reopened for editing.
func NewEditor(existing []models.DateOption) *Editor {
	e := &Editor{}
	e.options = append(e.options, existing...)
	return e
}

// AddSpecific appends a single-day option. Adding a (start, end) pair that
// is already present is a no-op.
func (e *Editor) AddSpecific(date string) error {
	return e.AddRange(date, date)
}

// AddRange appends an inclusive day-range option. The range is rejected
// when start is empty, either bound is not a calendar date, or end sorts
// before start. Duplicates by (start, end) are silently dropped.
func (e *Editor) AddRange(start, end string) error {
	if start == "" {
		return ErrMissingStart
	}
	startDay, err := parseDay(start)
	if err != nil {
		return err
	}
	if end == "" {
		return ErrEndBeforeStart
	}
	endDay, err := parseDay(end)
	if err != nil {
		return err
	}
	if endDay.Before(startDay) {
		return ErrEndBeforeStart
	}

	for _, opt := range e.options {
		if !opt.IsDayOfWeek() && opt.Start == start && opt.End == end {
			return nil
		}
	}

	e.options = append(e.options, models.DateOption{
		ID:           uuid.NewString(),
		Start:        start,
		End:          end,
		DisplayRange: rangeLabel(start, end),
	})
	return nil
}

// AddDaysOfWeek sets the recurring-weekday option. A new selection
// replaces any existing day-of-week option; the list never holds two.
func (e *Editor) AddDaysOfWeek(days []string) error {
	if len(days) == 0 {
		return ErrNoDaysSelected
	}
	var selected []string
	for _, d := range days {
		if !models.ValidWeekday(d) {
			return fmt.Errorf("unknown weekday %q", d)
		}
		if !containsString(selected, d) {
			selected = append(selected, d)
		}
	}

	e.Remove(DayOfWeekKey, "")
	e.options = append(e.options, models.DateOption{
		ID:           uuid.NewString(),
		Type:         models.TypeDayOfWeek,
		Days:         selected,
		DisplayRange: "Days: " + strings.Join(selected, ", "),
	})
	return nil
}

// Remove drops the option identified by (start, end), or the day-of-week
// option when start is DayOfWeekKey. Removing an absent key is a no-op.
func (e *Editor) Remove(start, end string) {
	kept := e.options[:0]
	for _, opt := range e.options {
		if start == DayOfWeekKey {
			if opt.IsDayOfWeek() {
				continue
			}
		} else if !opt.IsDayOfWeek() && opt.Start == start && opt.End == end {
			continue
		}
		kept = append(kept, opt)
	}
	e.options = kept
}

// Len returns the number of options currently held.
func (e *Editor) Len() int {
	return len(e.options)
}

// Options returns the options in insertion order.
func (e *Editor) Options() []models.DateOption {
	out := make([]models.DateOption, len(e.options))
	copy(out, e.options)
	return out
}

// BuildOptions runs a submitted dates list through a fresh editor,
// applying the same validation and dedup rules as interactive authoring.
func BuildOptions(inputs []models.DateOptionInput) ([]models.DateOption, error) {
	e := &Editor{}
	for _, in := range inputs {
		var err error
		switch {
		case in.Type == models.TypeDayOfWeek:
			err = e.AddDaysOfWeek(in.Days)
		case in.End == "" || in.End == in.Start:
			err = e.AddSpecific(in.Start)
		default:
			err = e.AddRange(in.Start, in.End)
		}
		if err != nil {
			return nil, err
		}
	}
	return e.Options(), nil
}

// EventType derives the event's type discriminant from its first option.
func EventType(dates []models.DateOption) string {
	if len(dates) == 0 {
		return models.TypeSpecific
	}
	switch {
	case dates[0].IsDayOfWeek():
		return models.TypeDayOfWeek
	case dates[0].IsSpecific():
		return models.TypeSpecific
	default:
		return models.TypeRange
	}
}

func parseDay(iso string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", iso, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, iso)
	}
	return t, nil
}

func rangeLabel(start, end string) string {
	if start == end {
		return models.FormatDisplayDate(start)
	}
	return models.FormatDisplayDate(start) + " to " + models.FormatDisplayDate(end)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
