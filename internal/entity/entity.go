// Package entity defines the domain records the storage engine holds:
// conferences and the sessions parented under them.
//
// Keys are opaque strings. A session key is allocated under its parent
// conference key and rendered "confKey/sessionID"; the core never parses
// keys back apart, it only passes them around.
package entity

import (
	"fmt"
	"time"
)

// Canonical storage field names for Session. Client-facing filter tokens are
// mapped onto these by the filter package; everything below the normalization
// boundary works in terms of these names only.
const (
	FieldName          = "name"
	FieldSpeaker       = "speaker"
	FieldHighlights    = "highlights"
	FieldTypeOfSession = "typeOfSession"
	FieldStartTime     = "startTime"
	FieldDate          = "date"
	FieldConferenceKey = "conferenceKeyBelongTo"
)

// NoStartTime marks a session without a start time. Stored start times are
// always minutes since local midnight in [0, 1439].
const NoStartTime = -1

// Session is a single conference session.
type Session struct {
	Key             string        // opaque key, parented under a conference
	Name            string        // required
	Speaker         string        // optional
	Highlights      []string      // ordered
	Duration        string        // free-form, e.g. "60 minutes"
	TypeOfSession   []SessionType // zero or more canonical category tags
	Date            time.Time     // calendar date; zero means unset
	StartTime       int           // minutes since midnight; NoStartTime means unset
	ConferenceKey   string        // owning conference, by key string
	OrganizerUserID string        // user that created the parent conference
}

// HasStartTime reports whether the session carries a start time.
func (s Session) HasStartTime() bool {
	return s.StartTime >= 0
}

// HasDate reports whether the session carries a date.
func (s Session) HasDate() bool {
	return !s.Date.IsZero()
}

// Conference is the parent record sessions hang off. The core only reads
// Key, Name and OrganizerUserID; the remaining fields are carried so a
// conference round-trips through storage intact.
type Conference struct {
	Key             string
	Name            string
	Description     string
	OrganizerUserID string
	Topics          []string
	City            string
	StartDate       time.Time
	EndDate         time.Time
	Month           int
	MaxAttendees    int
	SeatsAvailable  int
}

// SessionType is a canonical session category tag. Sessions always store the
// canonical enumeration name, never a raw client-provided string.
type SessionType string

const (
	TypeNotSpecified SessionType = "NOT_SPECIFIED"
	TypeLecture      SessionType = "LECTURE"
	TypeKeynote      SessionType = "KEYNOTE"
	TypeWorkshop     SessionType = "WORKSHOP"
	TypeDemo         SessionType = "DEMO"
	TypeSocial       SessionType = "SOCIAL"
)

var sessionTypes = map[string]SessionType{
	string(TypeNotSpecified): TypeNotSpecified,
	string(TypeLecture):      TypeLecture,
	string(TypeKeynote):      TypeKeynote,
	string(TypeWorkshop):     TypeWorkshop,
	string(TypeDemo):         TypeDemo,
	string(TypeSocial):       TypeSocial,
}

// ParseSessionType maps a client-provided tag to its canonical SessionType.
func ParseSessionType(s string) (SessionType, error) {
	t, ok := sessionTypes[s]
	if !ok {
		return "", fmt.Errorf("unknown session type %q", s)
	}
	return t, nil
}

// HasType reports whether the session carries the given category tag.
func (s Session) HasType(t SessionType) bool {
	for _, st := range s.TypeOfSession {
		if st == t {
			return true
		}
	}
	return false
}

// HasHighlight reports whether the session lists the given highlight.
func (s Session) HasHighlight(h string) bool {
	for _, v := range s.Highlights {
		if v == h {
			return true
		}
	}
	return false
}
