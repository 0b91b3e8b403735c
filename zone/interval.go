package zone

import (
	"cmp"
	"slices"
)

// Interval is a closed range of x-coordinates.
type Interval struct {
	Low, High int64
}

// Overlaps reports whether r and o share at least one cell.
// Intervals that merely touch, like [0,5] and [6,9], do not overlap.
func (r Interval) Overlaps(o Interval) bool {
	return r.Low <= o.High && o.Low <= r.High
}

func (r Interval) clamp(bound int64) Interval {
	return Interval{max(r.Low, 0), min(r.High, bound)}
}

// IntervalSet is a sorted list of disjoint intervals. Adjacent elements
// always satisfy s[i].High < s[i+1].Low.
type IntervalSet []Interval

// Merge returns the sorted union of intervals. Only overlapping
// intervals are combined. The input slice is left untouched.
func Merge(intervals []Interval) IntervalSet {
	return merge(slices.Clone(intervals), -1)
}

// MergeWithin is like Merge but clamps every interval to [0, bound]
// first. Intervals that fall outside the bound entirely are dropped.
func MergeWithin(intervals []Interval, bound int64) IntervalSet {
	if bound < 0 {
		return nil
	}
	return merge(slices.Clone(intervals), bound)
}

// merge sorts and folds s in place. A negative bound disables clamping.
func merge(s []Interval, bound int64) IntervalSet {
	if bound >= 0 {
		n := 0
		for _, r := range s {
			r = r.clamp(bound)
			if r.Low > r.High {
				continue
			}
			s[n] = r
			n++
		}
		s = s[:n]
	}
	if len(s) == 0 {
		return nil
	}

	slices.SortFunc(s, func(a, b Interval) int { return cmp.Compare(a.Low, b.Low) })

	i := 0
	for _, r := range s[1:] {
		if r.Overlaps(s[i]) {
			s[i].High = max(s[i].High, r.High)
			continue
		}
		i++
		s[i] = r
	}
	return IntervalSet(s[:i+1])
}
