package openings

import (
	"sort"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultRecovery is how long after an opening is closed the hive is still
// assumed to be recovering, so its sensor readings stay excluded.
const DefaultRecovery = time.Hour

// ErrZeroTimestamp reports a query made with the time.Time zero value,
// i.e. a timestamp the caller never actually set. This is a programming
// error and queries fail fast on it.
var ErrZeroTimestamp = errors.New("timestamp is the zero value")

// Interval is an exclusion window. Membership is closed on both ends.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Contains(timestamp time.Time) bool {
	return (timestamp.Equal(iv.Start) || timestamp.After(iv.Start)) &&
		(timestamp.Equal(iv.End) || timestamp.Before(iv.End))
}

// InvalidIntervals returns the exclusion intervals for hive that intersect
// the query window [start, end]. Each opening's exclusion window is its
// opening period extended by recovery; contributing windows are clipped to
// the query window. Overlapping results are not merged and the order of
// the result is unspecified.
//
// An opening contributes when any of these hold:
//
//	start <= opening.Start < end
//	start < opening.End+recovery <= end
//	opening.Start <= start && opening.End+recovery >= end
//
// This is deliberately not the textbook interval-overlap test; the
// asymmetric bounds are part of the contract and pinned by tests.
func (t *Table) InvalidIntervals(start, end time.Time, hive int, recovery time.Duration) ([]Interval, error) {
	if start.IsZero() || end.IsZero() {
		return nil, errors.Wrap(ErrZeroTimestamp, "query window")
	}

	var intervals []Interval
	for _, r := range t.forHive(hive) {
		exclEnd := r.End.Add(recovery)

		startsInside := !r.Start.Before(start) && r.Start.Before(end)
		endsInside := exclEnd.After(start) && !exclEnd.After(end)
		covers := !r.Start.After(start) && !exclEnd.Before(end)
		if !startsInside && !endsInside && !covers {
			continue
		}

		iv := Interval{Start: r.Start, End: exclEnd}
		if iv.Start.Before(start) {
			iv.Start = start
		}
		if iv.End.After(end) {
			iv.End = end
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// FilterTimestamps drops every timestamp that falls inside an exclusion
// interval for hive. The result is always sorted ascending, even when the
// input was not.
func (t *Table) FilterTimestamps(timestamps []time.Time, hive int, recovery time.Duration) ([]time.Time, error) {
	for _, ts := range timestamps {
		if ts.IsZero() {
			return nil, errors.Wrap(ErrZeroTimestamp, "filter input")
		}
	}
	if len(timestamps) == 0 {
		return []time.Time{}, nil
	}

	sorted := make([]time.Time, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	invalid, err := t.InvalidIntervals(sorted[0], sorted[len(sorted)-1], hive, recovery)
	if err != nil {
		return nil, err
	}

	valid := make([]time.Time, 0, len(sorted))
	for _, ts := range sorted {
		excluded := false
		for _, iv := range invalid {
			if iv.Contains(ts) {
				excluded = true
				break
			}
		}
		if !excluded {
			valid = append(valid, ts)
		}
	}
	return valid, nil
}

// IsValid reports whether a single timestamp survives filtering for hive.
func (t *Table) IsValid(timestamp time.Time, hive int, recovery time.Duration) (bool, error) {
	valid, err := t.FilterTimestamps([]time.Time{timestamp}, hive, recovery)
	if err != nil {
		return false, err
	}
	return len(valid) > 0, nil
}
