package domain

import "time"

// Interval is a half-open time range [Start, End): the start instant is
// included, the end instant is not. Two back-to-back appointments that share
// a boundary instant therefore do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Overlaps reports whether the two half-open intervals share more than an
// instant: i.Start < o.End && i.End > o.Start.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}
