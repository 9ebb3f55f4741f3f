package booking

import (
	"sync"
	"testing"
	"time"
)

func TestSlotLockerSerializesSameSlot(t *testing.T) {
	locker := NewSlotLocker()
	day := NewDate(2024, 1, 1)

	unlock := locker.Lock(1, day)

	acquired := make(chan struct{})
	go func() {
		release := locker.Lock(1, day)
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatalf("second Lock on the same slot should block")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("second Lock never acquired after release")
	}
}

func TestSlotLockerIndependentSlots(t *testing.T) {
	locker := NewSlotLocker()
	day := NewDate(2024, 1, 1)

	unlockA := locker.Lock(1, day)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		locker.Lock(2, day)()
		locker.Lock(1, day.AddDays(1))()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("locks on other slots should not block")
	}
}

func TestSlotLockerReleasesEntries(t *testing.T) {
	locker := NewSlotLocker()
	day := NewDate(2024, 1, 1)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(court int64) {
			defer wg.Done()
			locker.Lock(court%3, day)()
		}(int64(i))
	}
	wg.Wait()

	if n := locker.size(); n != 0 {
		t.Fatalf("locker holds %d entries after all releases, want 0", n)
	}
}
