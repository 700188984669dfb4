package schedule

import "time"

// Debouncer coalesces bursts of triggers per key: only the last trigger of a
// burst runs, Delay after it arrived.
type Debouncer struct {
	sched   *Scheduler
	delay   time.Duration
	pending map[string]TaskID
}

// NewDebouncer returns a debouncer running on s.
func NewDebouncer(s *Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{
		sched:   s,
		delay:   delay,
		pending: make(map[string]TaskID),
	}
}

// Trigger replaces any pending call for key with fn.
func (d *Debouncer) Trigger(key string, fn func()) {
	if id, ok := d.pending[key]; ok {
		d.sched.Cancel(id)
	}
	var id TaskID
	id = d.sched.After(d.delay, func() {
		if d.pending[key] == id {
			delete(d.pending, key)
		}
		fn()
	})
	d.pending[key] = id
}

// Flush drops the pending call for key without running it.
func (d *Debouncer) Flush(key string) {
	if id, ok := d.pending[key]; ok {
		d.sched.Cancel(id)
		delete(d.pending, key)
	}
}

// Pending reports whether key has a call waiting.
func (d *Debouncer) Pending(key string) bool {
	_, ok := d.pending[key]
	return ok
}

// DirtyFlag collapses any number of Mark calls into a single Consume.
type DirtyFlag struct {
	dirty bool
}

// Mark records that reconciliation is needed.
func (f *DirtyFlag) Mark() { f.dirty = true }

// IsSet reports whether a reconciliation is pending.
func (f *DirtyFlag) IsSet() bool { return f.dirty }

// Consume clears the flag and reports whether it was set.
func (f *DirtyFlag) Consume() bool {
	was := f.dirty
	f.dirty = false
	return was
}
