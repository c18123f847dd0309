// Package filter normalizes client-supplied session filter clauses.
//
// A client clause is a (field, operator, value) triple of raw strings. The
// normalization boundary maps the field and operator tokens onto their
// canonical storage-facing forms, coerces the value to the field's type
// (clock strings become minutes since midnight, date strings become dates),
// and rejects anything it does not recognize. Nothing below this boundary
// ever sees a raw token; unknown fields fail here instead of falling back
// to a reflective attribute lookup.
package filter

import (
	"errors"
	"fmt"
	"time"

	"confhall/internal/entity"
	"confhall/internal/timecode"
)

// ErrInvalidFilter is returned for an unknown field or operator token, or a
// value that does not parse as the field's type.
var ErrInvalidFilter = errors.New("invalid filter")

// DateLayout is the wire format for date values.
const DateLayout = "2006-01-02"

// Op is a canonical comparison operator.
type Op string

const (
	OpEq  Op = "="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpNe  Op = "!="
)

// Inequality reports whether the operator is anything but equality. Every
// such operator counts as an inequality for query-planning purposes.
func (op Op) Inequality() bool {
	return op != OpEq
}

// Input is a filter clause as supplied by a client, before validation.
type Input struct {
	Field    string
	Operator string
	Value    string
}

// Clause is a normalized filter clause. Field is a canonical entity field
// name, Op a canonical operator, and Value is typed: int for startTime,
// time.Time for date, string for everything else.
type Clause struct {
	Field string
	Op    Op
	Value any
}

func (c Clause) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, c.Value)
}

// sessionFields maps client field tokens to canonical storage field names.
var sessionFields = map[string]string{
	"NAME":            entity.FieldName,
	"SPEAKER":         entity.FieldSpeaker,
	"HIGHLIGHTS":      entity.FieldHighlights,
	"TYPE_OF_SESSION": entity.FieldTypeOfSession,
	"START_TIME":      entity.FieldStartTime,
	"DATE":            entity.FieldDate,
}

// operators maps client operator tokens to canonical symbols.
var operators = map[string]Op{
	"EQ":   OpEq,
	"GT":   OpGt,
	"GTEQ": OpGte,
	"LT":   OpLt,
	"LTEQ": OpLte,
	"NE":   OpNe,
}

// Normalize validates one client clause and produces its canonical form.
// It has no side effects and touches no storage.
func Normalize(in Input) (Clause, error) {
	field, ok := sessionFields[in.Field]
	if !ok {
		return Clause{}, fmt.Errorf("unknown field token %q: %w", in.Field, ErrInvalidFilter)
	}
	op, ok := operators[in.Operator]
	if !ok {
		return Clause{}, fmt.Errorf("unknown operator token %q: %w", in.Operator, ErrInvalidFilter)
	}

	c := Clause{Field: field, Op: op}
	switch field {
	case entity.FieldStartTime:
		minutes, err := timecode.ParseClock(in.Value)
		if err != nil {
			return Clause{}, fmt.Errorf("start time filter: %w", err)
		}
		c.Value = minutes
	case entity.FieldDate:
		d, err := time.Parse(DateLayout, in.Value)
		if err != nil {
			return Clause{}, fmt.Errorf("date filter %q: %w", in.Value, ErrInvalidFilter)
		}
		c.Value = d
	default:
		c.Value = in.Value
	}
	return c, nil
}

// NormalizeAll normalizes a full clause list, preserving submission order.
// Validation is all-or-nothing: the first bad clause fails the whole set
// before any storage work happens.
func NormalizeAll(ins []Input) ([]Clause, error) {
	clauses := make([]Clause, 0, len(ins))
	for _, in := range ins {
		c, err := Normalize(in)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}
