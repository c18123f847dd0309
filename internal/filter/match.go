package filter

import (
	"time"

	"confhall/internal/entity"
)

// Matches reports whether the session satisfies one normalized clause,
// evaluated in memory.
//
// List-valued fields (typeOfSession, highlights) use membership semantics:
// "=" means the value is a member, "!=" means the value is not a member.
// The remaining operators are meaningless on lists and never reach here;
// clauses come from Normalize, and the planner only routes list fields with
// these two operators. Scalar fields compare with the full operator table.
func Matches(s entity.Session, c Clause) bool {
	switch c.Field {
	case entity.FieldName:
		return cmpOrdered(s.Name, c.Value.(string), c.Op)
	case entity.FieldSpeaker:
		return cmpOrdered(s.Speaker, c.Value.(string), c.Op)
	case entity.FieldConferenceKey:
		return cmpOrdered(s.ConferenceKey, c.Value.(string), c.Op)
	case entity.FieldHighlights:
		return matchMember(s.HasHighlight(c.Value.(string)), c.Op)
	case entity.FieldTypeOfSession:
		return matchMember(s.HasType(entity.SessionType(c.Value.(string))), c.Op)
	case entity.FieldStartTime:
		if !s.HasStartTime() {
			return false
		}
		return cmpOrdered(s.StartTime, c.Value.(int), c.Op)
	case entity.FieldDate:
		if !s.HasDate() {
			return false
		}
		return cmpTime(s.Date, c.Value.(time.Time), c.Op)
	}
	return false
}

func matchMember(member bool, op Op) bool {
	switch op {
	case OpEq:
		return member
	case OpNe:
		return !member
	}
	return false
}

func cmpOrdered[T int | string](a, b T, op Op) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	}
	return false
}

func cmpTime(a, b time.Time, op Op) bool {
	switch op {
	case OpEq:
		return a.Equal(b)
	case OpNe:
		return !a.Equal(b)
	case OpGt:
		return a.After(b)
	case OpGte:
		return !a.Before(b)
	case OpLt:
		return a.Before(b)
	case OpLte:
		return !a.After(b)
	}
	return false
}
