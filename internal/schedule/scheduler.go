// Package schedule runs deferred work on a virtual clock that the frame
// driver advances. Nothing here starts goroutines: tasks run synchronously
// inside Advance on the caller's thread.
package schedule

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler is a cooperative timer queue keyed on virtual time.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	tasks  []task
}

// New returns a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once delay has elapsed. A non-positive delay runs
// fn on the next Advance, including Advance(0).
func (s *Scheduler) After(delay time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, task{id: s.nextID, due: s.now + delay, fn: fn})
	return s.nextID
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of tasks not yet run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by d and runs every task that becomes due,
// earliest first; ties run in scheduling order. Tasks scheduled while
// advancing run in the same call if they fall due within the window.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := s.now + d
	ran := 0
	for {
		idx := s.nextDue(target)
		if idx < 0 {
			break
		}
		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
		ran++
	}
	s.now = target
	return ran
}

// nextDue returns the index of the earliest task due at or before target.
func (s *Scheduler) nextDue(target time.Duration) int {
	best := -1
	for i, t := range s.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due || (t.due == s.tasks[best].due && t.id < s.tasks[best].id) {
			best = i
		}
	}
	return best
}

// Due returns the due times of pending tasks in firing order.
func (s *Scheduler) Due() []time.Duration {
	out := make([]time.Duration, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.due
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
