// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain records and request/response types.

# Storage Format

Person, Tribe, Event, DateOption and ParticipantResponse are the persisted
record shapes; they round-trip losslessly through the document store as
JSON. Participant votes are positional: votes[i] answers dates[i], and a
valid event always satisfies len(votes) == len(dates) for every
participant.

# Vote Values

	0  no
	1  undecided (also the fill value when an event grows new options)
	2  yes

No other encoding is defined.

# Date Options

Three variants share one struct:

  - specific day: Start == End, Type empty
  - inclusive range: Start <= End, Type empty
  - recurring weekdays: Type == "dayOfWeek", Days non-empty

An event holds at most one day-of-week option.
*/
package models
