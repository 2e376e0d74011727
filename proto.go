package chrono

import (
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Limits of the protobuf well-known types.
const (
	minProtoSeconds = -62135596800 // 0001-01-01T00:00:00Z
	maxProtoSeconds = 253402300799 // 9999-12-31T23:59:59Z
	maxProtoSpan    = 315576000000 // 10,000 years
)

// Proto converts m to a google.protobuf.Timestamp. The offset is not part
// of the message and is dropped.
func (m Moment) Proto() (*timestamppb.Timestamp, error) {
	if m.sec < minProtoSeconds || m.sec > maxProtoSeconds {
		return nil, rangeError("proto", "timestamp outside google.protobuf.Timestamp range")
	}
	return &timestamppb.Timestamp{Seconds: m.sec, Nanos: m.nsec}, nil
}

// MomentFromProto converts ts to a Moment observed at offset seconds east
// of UTC, truncated to whole minutes.
func MomentFromProto(ts *timestamppb.Timestamp, offset int) (Moment, error) {
	if err := ts.CheckValid(); err != nil {
		return Moment{}, &Error{Kind: KindRange, Op: "from_proto", Msg: "invalid timestamp", Err: err}
	}
	return Moment{sec: ts.GetSeconds(), nsec: ts.GetNanos(), offset: wholeMinutes(offset)}, nil
}

// Proto converts s to a google.protobuf.Duration.
func (s Span) Proto() (*durationpb.Duration, error) {
	secs, nanos := s.Seconds(), s.SubsecNanos()
	if secs < -maxProtoSpan || secs > maxProtoSpan {
		return nil, rangeError("proto", "delta outside google.protobuf.Duration range")
	}
	return &durationpb.Duration{Seconds: secs, Nanos: nanos}, nil
}

// SpanFromProto converts d to a Span.
func SpanFromProto(d *durationpb.Duration) (Span, error) {
	if err := d.CheckValid(); err != nil {
		return Span{}, &Error{Kind: KindRange, Op: "from_proto", Msg: "invalid duration", Err: err}
	}
	nanos := d.GetNanos()
	secs := d.GetSeconds()
	if nanos < 0 {
		nanos += nanosPerSecond
		secs--
	}
	return Span{secs: secs, nanos: nanos}, nil
}

// Proto converts the referenced Moment to a google.protobuf.Timestamp.
func (h *MomentHandle) Proto() (*timestamppb.Timestamp, error) { return h.Get().Proto() }

// Proto converts the referenced Span to a google.protobuf.Duration.
func (h *SpanHandle) Proto() (*durationpb.Duration, error) { return h.Get().Proto() }
