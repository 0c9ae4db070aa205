// Package streak computes streak statistics for a habit from its
// periodicity and completion timestamps. It is pure: callers supply the
// reference instant and all state.
//
// Interval convention: time is partitioned into fixed-length intervals of
// 1 (daily) or 7 (weekly) calendar days, anchored at midnight of the
// habit's creation day. Multiple completions inside one interval count
// once. The interval containing the reference instant is "open": it can
// extend the current streak but a missing completion in it does not reset
// the streak yet. A habit is reported broken when it has history but no
// completion in the open interval; a habit with no completions at all is
// inactive, not broken.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/kdrews/cadence/internal/models"
)

// Result holds the streak statistics for a single habit.
type Result struct {
	// Current is the length of the consecutive completed run ending in
	// the open interval or the one immediately before it.
	Current int
	// Longest is the longest consecutive completed run anywhere in the
	// habit's history.
	Longest int
	// Broken reports that the habit has completions but none in the
	// interval containing the reference instant.
	Broken bool
}

// Compute derives streak statistics for a habit with the given
// periodicity and creation time from its completion timestamps, relative
// to now. Completions before creation or after now are ignored.
func Compute(p models.Periodicity, createdAt time.Time, completions []time.Time, now time.Time) (Result, error) {
	perDays := p.Days()
	if perDays <= 0 {
		return Result{}, fmt.Errorf("invalid periodicity: %q", p)
	}

	refIdx := intervalIndex(createdAt, now, perDays)
	if refIdx < 0 {
		return Result{}, fmt.Errorf("reference instant %s precedes habit creation %s",
			now.Format(time.RFC3339), createdAt.Format(time.RFC3339))
	}

	if len(completions) == 0 {
		return Result{}, nil
	}

	// Map completions to their intervals, deduplicating.
	done := make(map[int]bool)
	for _, ts := range completions {
		idx := intervalIndex(createdAt, ts, perDays)
		if idx < 0 || idx > refIdx {
			continue
		}
		done[idx] = true
	}
	if len(done) == 0 {
		return Result{}, nil
	}

	indices := make([]int, 0, len(done))
	for idx := range done {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	res := Result{Broken: !done[refIdx]}

	// Longest: maximum contiguous run over the whole history.
	run := 1
	res.Longest = 1
	for i := 1; i < len(indices); i++ {
		if indices[i] == indices[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > res.Longest {
			res.Longest = run
		}
	}

	// Current: run ending at the open interval, or at the interval just
	// before it while the open interval is still unfinished.
	last := indices[len(indices)-1]
	if last == refIdx || last == refIdx-1 {
		cur := 1
		for i := last - 1; done[i]; i-- {
			cur++
		}
		res.Current = cur
	}

	return res, nil
}

// IntervalOf returns the interval number a timestamp falls into for a
// habit created at createdAt. Negative for timestamps before the
// creation day.
func IntervalOf(p models.Periodicity, createdAt, ts time.Time) (int, error) {
	perDays := p.Days()
	if perDays <= 0 {
		return 0, fmt.Errorf("invalid periodicity: %q", p)
	}
	return intervalIndex(createdAt, ts, perDays), nil
}

// intervalIndex maps a timestamp to its interval number relative to the
// anchor. Negative for timestamps before the anchor's calendar day.
func intervalIndex(anchor, ts time.Time, perDays int) int {
	days := calendarDays(anchor, ts)
	if days < 0 {
		// Integer division truncates toward zero; force day -1 into
		// interval -1 rather than 0.
		return (days - perDays + 1) / perDays
	}
	return days / perDays
}

// calendarDays returns the number of whole calendar days from a's date to
// b's date, each taken in its own location. Using dates rather than
// durations keeps DST transitions from shifting interval boundaries.
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}
