package schedule_test

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/spatialwm/internal/schedule"
)

func TestSchedulerRunsInDueOrder(t *testing.T) {
	s := schedule.New()
	var got []string

	s.After(300*time.Millisecond, func() { got = append(got, "b") })
	s.After(100*time.Millisecond, func() { got = append(got, "a") })
	s.After(300*time.Millisecond, func() { got = append(got, "c") })

	if ran := s.Advance(200 * time.Millisecond); ran != 1 {
		t.Fatalf("expected 1 task, ran %d", ran)
	}
	s.Advance(100 * time.Millisecond)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if s.Now() != 300*time.Millisecond {
		t.Errorf("expected clock at 300ms, got %v", s.Now())
	}
}

func TestSchedulerNestedTasks(t *testing.T) {
	s := schedule.New()
	var at []time.Duration

	s.After(300*time.Millisecond, func() {
		at = append(at, s.Now())
		s.After(1200*time.Millisecond, func() {
			at = append(at, s.Now())
		})
	})

	s.Advance(2 * time.Second)

	if len(at) != 2 {
		t.Fatalf("expected both tasks to fire, got %d", len(at))
	}
	if at[0] != 300*time.Millisecond || at[1] != 1500*time.Millisecond {
		t.Errorf("unexpected fire times: %v", at)
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", s.Pending())
	}
}

func TestSchedulerZeroDelay(t *testing.T) {
	s := schedule.New()
	fired := false
	s.After(0, func() { fired = true })

	if fired {
		t.Fatal("task must not run inline")
	}
	s.Advance(0)
	if !fired {
		t.Error("zero-delay task should run on the next Advance")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := schedule.New()
	fired := false
	id := s.After(time.Second, func() { fired = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel should report a pending task")
	}
	if s.Cancel(id) {
		t.Error("second Cancel should report false")
	}
	s.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled task ran")
	}
}

func TestDebouncerKeepsLastTrigger(t *testing.T) {
	s := schedule.New()
	d := schedule.NewDebouncer(s, 200*time.Millisecond)

	var got []int
	for i := range 5 {
		v := i
		d.Trigger("w1", func() { got = append(got, v) })
		s.Advance(50 * time.Millisecond)
	}

	if len(got) != 0 {
		t.Fatalf("nothing should fire inside the burst, got %v", got)
	}
	if !d.Pending("w1") {
		t.Fatal("expected a pending call")
	}

	s.Advance(200 * time.Millisecond)
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("expected only the last value 4, got %v", got)
	}
	if d.Pending("w1") {
		t.Error("pending call should be cleared after firing")
	}
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	s := schedule.New()
	d := schedule.NewDebouncer(s, 100*time.Millisecond)

	count := map[string]int{}
	d.Trigger("a", func() { count["a"]++ })
	d.Trigger("b", func() { count["b"]++ })
	d.Flush("b")

	s.Advance(time.Second)
	if count["a"] != 1 || count["b"] != 0 {
		t.Errorf("unexpected counts: %v", count)
	}
}

func TestDirtyFlag(t *testing.T) {
	var f schedule.DirtyFlag
	if f.Consume() {
		t.Fatal("fresh flag should be clean")
	}
	f.Mark()
	f.Mark()
	if !f.IsSet() {
		t.Fatal("flag should be set")
	}
	if !f.Consume() {
		t.Error("Consume should report the mark")
	}
	if f.Consume() {
		t.Error("second Consume should report clean")
	}
}
