package chrono

import "fmt"

// Field names a settable calendar or clock component of a Moment.
type Field int

const (
	FieldOrdinal Field = iota
	FieldOrdinal0
	FieldYear
	FieldMonth
	FieldMonth0
	FieldDay
	FieldDay0
	FieldHour
	FieldMinute
	FieldSecond
	FieldNanosecond
)

var fieldNames = [...]string{
	FieldOrdinal:    "ordinal",
	FieldOrdinal0:   "ordinal0",
	FieldYear:       "year",
	FieldMonth:      "month",
	FieldMonth0:     "month0",
	FieldDay:        "day",
	FieldDay0:       "day0",
	FieldHour:       "hour",
	FieldMinute:     "minute",
	FieldSecond:     "second",
	FieldNanosecond: "nanosecond",
}

// Fields lists every Field in declaration order.
var Fields = []Field{
	FieldOrdinal, FieldOrdinal0, FieldYear, FieldMonth, FieldMonth0,
	FieldDay, FieldDay0, FieldHour, FieldMinute, FieldSecond, FieldNanosecond,
}

func (f Field) String() string {
	if f >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField returns the Field called name.
func ParseField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return Field(f), true
		}
	}
	return 0, false
}

// Get returns the value of field f.
func (m Moment) Get(f Field) int64 {
	switch f {
	case FieldOrdinal:
		return int64(m.Ordinal())
	case FieldOrdinal0:
		return int64(m.Ordinal0())
	case FieldYear:
		return int64(m.Year())
	case FieldMonth:
		return int64(m.Month())
	case FieldMonth0:
		return int64(m.Month0())
	case FieldDay:
		return int64(m.Day())
	case FieldDay0:
		return int64(m.Day0())
	case FieldHour:
		return int64(m.Hour())
	case FieldMinute:
		return int64(m.Minute())
	case FieldSecond:
		return int64(m.Second())
	case FieldNanosecond:
		return int64(m.Nanosecond())
	}
	panic(fmt.Sprintf("chrono: unknown field %d", int(f)))
}

// With returns m with field f set to v. On failure it returns m unchanged
// together with a field range error.
func (m Moment) With(f Field, v int64) (Moment, error) {
	switch f {
	case FieldOrdinal:
		return m.WithOrdinal(v)
	case FieldOrdinal0:
		return m.WithOrdinal0(v)
	case FieldYear:
		return m.WithYear(v)
	case FieldMonth:
		return m.WithMonth(v)
	case FieldMonth0:
		return m.WithMonth0(v)
	case FieldDay:
		return m.WithDay(v)
	case FieldDay0:
		return m.WithDay0(v)
	case FieldHour:
		return m.WithHour(v)
	case FieldMinute:
		return m.WithMinute(v)
	case FieldSecond:
		return m.WithSecond(v)
	case FieldNanosecond:
		return m.WithNanosecond(v)
	}
	return m, fieldError("with", f.String(), v)
}
