package handlers

import (
	"sync"
	"testing"
	"time"
)

func TestCalendarLocks_SerializesSameCalendar(t *testing.T) {
	locks := newCalendarLocks()

	unlock := locks.Lock("calendar-1")
	acquired := make(chan struct{})
	go func() {
		release := locks.Lock("calendar-1")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
}

func TestCalendarLocks_IndependentCalendars(t *testing.T) {
	locks := newCalendarLocks()

	unlockFirst := locks.Lock("calendar-1")
	defer unlockFirst()

	done := make(chan struct{})
	go func() {
		locks.Lock("calendar-2")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different calendar blocked")
	}
}

func TestCalendarLocks_DropsReleasedEntries(t *testing.T) {
	locks := newCalendarLocks()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("calendar-1")()
		}()
	}
	wg.Wait()

	if size := locks.size(); size != 0 {
		t.Errorf("expected no entries after release, got %d", size)
	}
}
