package numrun

import (
	"strings"
	"testing"
	"time"
)

func TestSchedulerOrder(t *testing.T) {
	s := newScheduler()
	var got []string
	s.after(30*time.Millisecond, func() { got = append(got, "c") })
	s.after(10*time.Millisecond, func() { got = append(got, "a") })
	s.after(10*time.Millisecond, func() { got = append(got, "b") })

	s.advance(5 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	s.advance(30 * time.Millisecond)
	if want := "abc"; strings.Join(got, "") != want {
		t.Errorf("order = %v, expected %s", got, want)
	}
	if s.pending() != 0 {
		t.Errorf("%d timers left", s.pending())
	}
}

func TestSchedulerEveryAndCancel(t *testing.T) {
	s := newScheduler()
	n := 0
	s.every(16*time.Millisecond, func() bool {
		n++
		return n < 3
	})
	s.advance(time.Second)
	if n != 3 {
		t.Errorf("interval fired %d times, expected 3", n)
	}

	fired := false
	id := s.after(10*time.Millisecond, func() { fired = true })
	s.cancel(id)
	s.advance(time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestSchedulerClockAtCallback(t *testing.T) {
	s := newScheduler()
	var at time.Duration
	s.after(25*time.Millisecond, func() {
		at = s.now
		// Already due within this advance.
		s.after(5*time.Millisecond, func() { at = s.now })
	})
	s.advance(50 * time.Millisecond)
	if at != 30*time.Millisecond {
		t.Errorf("nested timer ran at %v", at)
	}
	if s.now != 50*time.Millisecond {
		t.Errorf("clock = %v", s.now)
	}
}
