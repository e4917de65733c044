// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote values as stored in participant vote arrays.
const (
	VoteNo        = 0
	VoteUndecided = 1
	VoteYes       = 2
)

// Event type constants, mirroring the discriminant of the first date option.
const (
	TypeSpecific  = "specific"
	TypeRange     = "range"
	TypeDayOfWeek = "dayOfWeek"
)

// Weekdays in canonical display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidWeekday reports whether name is one of the canonical weekday names.
func ValidWeekday(name string) bool {
	for _, d := range Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// ValidVote reports whether v is a legal vote value.
func ValidVote(v int) bool {
	return v == VoteNo || v == VoteUndecided || v == VoteYes
}

// FormatDisplayDate renders an ISO YYYY-MM-DD date as MM/DD/YY.
// Dates carry no time component and are interpreted in UTC so the rendered
// day never drifts across timezones.
func FormatDisplayDate(iso string) string {
	t, err := time.ParseInLocation("2006-01-02", iso, time.UTC)
	if err != nil {
		return iso
	}
	return t.Format("01/02/06")
}

// Request types

type RegisterUserRequest struct {
	DisplayName string `json:"display_name"`
}

type PersonRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TribeRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// DateOptionInput is one candidate slot as submitted by a client. For
// specific dates only Start is set; for ranges Start and End; for the
// day-of-week variant Type is "dayOfWeek" and Days is the selection.
type DateOptionInput struct {
	Type  string   `json:"type,omitempty"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
	Days  []string `json:"days,omitempty"`
}

type EventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Anonymous   bool              `json:"anonymous"`
	TribeID     string            `json:"tribe_id"`
	Dates       []DateOptionInput `json:"dates"`
}

// EventFieldsRequest carries partial edits; nil fields are left unchanged.
type EventFieldsRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Anonymous   *bool   `json:"anonymous,omitempty"`
}

type SubmitVoteRequest struct {
	Name     string `json:"name"`
	MemberID string `json:"member_id,omitempty"`
	Votes    []int  `json:"votes"`
}

// Response types

type RegisterUserResponse struct {
	UserID  string `json:"user_id"`
	UserKey string `json:"user_key"`
}

type CreateEventResponse struct {
	EventID string `json:"event_id"`
	VoteURL string `json:"vote_url"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
}

// BallotResponse is the public view of an event served to voters. Existing
// participant names are never included here.
type BallotResponse struct {
	EventID     string       `json:"event_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        string       `json:"type"`
	Anonymous   bool         `json:"anonymous"`
	Dates       []DateOption `json:"dates"`
}

type ParticipantRow struct {
	Name  string `json:"name"`
	Votes []int  `json:"votes"`
}

type TallyRow struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Yes   int    `json:"yes"`
	No    int    `json:"no"`
	Best  bool   `json:"best"`
}

type EventResultsResponse struct {
	EventID      string           `json:"event_id"`
	Title        string           `json:"title"`
	Type         string           `json:"type"`
	Anonymous    bool             `json:"anonymous"`
	Rows         []TallyRow       `json:"rows"`
	BestOptions  []int            `json:"best_options"`
	Participants []ParticipantRow `json:"participants"`
}

// Domain types

// Person is an invitable contact owned by a user account.
type Person struct {
	ID        string    `json:"id,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Created   time.Time `json:"created,omitzero"`
}

// Tribe is a named set of people usable as an event's invitee pool.
// Members holds person ids; deleting a person strips it from every tribe.
type Tribe struct {
	ID      string    `json:"id,omitempty"`
	Name    string    `json:"name"`
	Members []string  `json:"members"`
	Created time.Time `json:"created,omitzero"`
	Updated time.Time `json:"updated,omitzero"`
}

// DateOption is one candidate time slot. Specific days and inclusive
// ranges both use Start/End (Start == End for a specific day); the
// day-of-week variant sets Type to "dayOfWeek" and lists its weekdays.
// Every option gets a generated id at creation so options stay
// identifiable across edits even though vote storage is positional.
type DateOption struct {
	ID           string   `json:"id,omitempty"`
	Type         string   `json:"type,omitempty"`
	Start        string   `json:"start,omitempty"`
	End          string   `json:"end,omitempty"`
	Days         []string `json:"days,omitempty"`
	DisplayRange string   `json:"displayRange,omitempty"`
}

// IsDayOfWeek reports whether the option is the recurring-weekday variant.
func (o DateOption) IsDayOfWeek() bool {
	return o.Type == TypeDayOfWeek
}

// IsSpecific reports whether the option is a single calendar day.
func (o DateOption) IsSpecific() bool {
	return !o.IsDayOfWeek() && o.Start == o.End
}

// ParticipantResponse is one respondent's votes, positionally aligned with
// the event's dates list. MemberID links the response to a tribe member
// when the voter identified as one; anonymous-by-name responses leave it
// empty and can never be removed by membership changes.
type ParticipantResponse struct {
	Votes    []int  `json:"votes"`
	MemberID string `json:"memberId,omitempty"`
}

// Event is a schedulable activity with candidate date options and the
// collected participant responses. Participants are keyed by the
// respondent's display name.
type Event struct {
	ID           string                         `json:"id,omitempty"`
	Title        string                         `json:"title"`
	Description  string                         `json:"description"`
	Type         string                         `json:"type"`
	Anonymous    bool                           `json:"anonymous"`
	TribeID      string                         `json:"tribeId"`
	Dates        []DateOption                   `json:"dates"`
	Participants map[string]ParticipantResponse `json:"participants,omitempty"`
	Created      time.Time                      `json:"created,omitzero"`
}

// Profile is the per-user record written at registration.
type Profile struct {
	DisplayName string    `json:"displayName"`
	Created     time.Time `json:"created,omitzero"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
