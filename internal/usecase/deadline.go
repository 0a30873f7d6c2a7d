package usecase

import "time"

// Deadline is an absolute cutoff for starting new work. The zero value never expires.
type Deadline struct {
	at  time.Time
	now func() time.Time
}

// NewDeadline creates a deadline at the given instant
func NewDeadline(at time.Time) Deadline {
	return Deadline{at: at, now: time.Now}
}

// DeadlineAfter creates a deadline d from now; a non-positive d yields an already expired deadline
func DeadlineAfter(d time.Duration) Deadline {
	return NewDeadline(time.Now().Add(d))
}

// TimedOut reports whether the cutoff has passed
func (d Deadline) TimedOut() bool {
	if d.at.IsZero() {
		return false
	}
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	return !now().Before(d.at)
}

// Remaining returns the time left before the cutoff, or 0 once it has passed.
// A zero deadline reports -1.
func (d Deadline) Remaining() time.Duration {
	if d.at.IsZero() {
		return -1
	}
	now := time.Now
	if d.now != nil {
		now = d.now
	}
	if left := d.at.Sub(now()); left > 0 {
		return left
	}
	return 0
}

// At returns the cutoff instant
func (d Deadline) At() time.Time {
	return d.at
}
