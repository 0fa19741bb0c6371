package editor

import "time"

// Debouncer delays an action until a quiet period of fixed length has
// elapsed since the last trigger. A new trigger replaces any pending
// deadline, it never adds a second one. The debouncer is stepped
// cooperatively from the main loop instead of running its own timer
// goroutine, so firing always happens on the caller's thread and teardown
// is a plain Cancel.
type Debouncer struct {
	period   time.Duration
	deadline time.Time
	armed    bool
}

func NewDebouncer(period time.Duration) *Debouncer {
	return &Debouncer{period: period}
}

// Trigger (re)arms the debouncer: the deadline becomes now+period,
// cancelling any earlier pending deadline.
func (d *Debouncer) Trigger(now time.Time) {
	d.deadline = now.Add(d.period)
	d.armed = true
}

// Fire reports whether the quiet period has elapsed. It returns true at
// most once per Trigger and disarms the debouncer when it does.
func (d *Debouncer) Fire(now time.Time) bool {
	if !d.armed || now.Before(d.deadline) {
		return false
	}
	d.armed = false
	return true
}

// Cancel discards any pending deadline.
func (d *Debouncer) Cancel() {
	d.armed = false
}

// Armed reports whether a deadline is pending.
func (d *Debouncer) Armed() bool {
	return d.armed
}
