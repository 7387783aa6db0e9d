package numrun

import (
	"slices"
	"time"
)

type timerID uint64

type timer struct {
	id       timerID
	at       time.Duration
	interval time.Duration // zero for one-shot timers
	fn       func() bool   // interval timers stop when fn returns false
}

// scheduler runs callbacks on the simulation clock. It is advanced once per
// Step, so every callback runs on the tick goroutine.
type scheduler struct {
	now    time.Duration
	nextID timerID
	timers []*timer
}

func newScheduler() *scheduler {
	return &scheduler{}
}

// after runs fn once, d after the current clock.
func (s *scheduler) after(d time.Duration, fn func()) timerID {
	return s.add(d, 0, func() bool { fn(); return false })
}

// every runs fn each interval until it returns false.
func (s *scheduler) every(interval time.Duration, fn func() bool) timerID {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(interval, interval, fn)
}

func (s *scheduler) add(d, interval time.Duration, fn func() bool) timerID {
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, at: s.now + d, interval: interval, fn: fn})
	return s.nextID
}

func (s *scheduler) cancel(id timerID) {
	s.timers = slices.DeleteFunc(s.timers, func(t *timer) bool { return t.id == id })
}

// advance moves the clock by d and fires every due timer in deadline order.
// Timers added by a callback fire in the same advance when already due.
func (s *scheduler) advance(d time.Duration) {
	target := s.now + d
	for {
		i := s.nextDue(target)
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.now = t.at
		if t.interval > 0 {
			t.at += t.interval
		} else {
			s.timers = slices.Delete(s.timers, i, i+1)
		}
		if !t.fn() && t.interval > 0 {
			s.cancel(t.id)
		}
	}
	s.now = target
}

func (s *scheduler) nextDue(target time.Duration) int {
	best := -1
	for i, t := range s.timers {
		if t.at > target {
			continue
		}
		if best < 0 || t.at < s.timers[best].at || (t.at == s.timers[best].at && t.id < s.timers[best].id) {
			best = i
		}
	}
	return best
}

func (s *scheduler) pending() int {
	return len(s.timers)
}
