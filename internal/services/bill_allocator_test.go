package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"rentwheels/internal/utils"
)

type fakeSequenceReader struct {
	mu  sync.Mutex
	max map[string]int
	err error
}

func (r *fakeSequenceReader) MaxBillSequence(ctx context.Context, datePrefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return r.max[datePrefix], nil
}

func TestAllocateFormat(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	pickup := time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)
	billID, err := allocator.Allocate(context.Background(), pickup, func(string) error { return nil })
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if billID != "BILL-20250607-00001" {
		t.Errorf("billID = %q, want BILL-20250607-00001", billID)
	}
}

func TestAllocateContinuesSequence(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{"BILL-20250607": 41}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	pickup := time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)
	billID, err := allocator.Allocate(context.Background(), pickup, func(string) error { return nil })
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if billID != "BILL-20250607-00042" {
		t.Errorf("billID = %q, want BILL-20250607-00042", billID)
	}
}

func TestAllocateSequenceResetsPerDate(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{"BILL-20250607": 99}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	nextDay := time.Date(2025, 6, 8, 0, 5, 0, 0, time.UTC)
	billID, err := allocator.Allocate(context.Background(), nextDay, func(string) error { return nil })
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if billID != "BILL-20250608-00001" {
		t.Errorf("billID = %q, want BILL-20250608-00001", billID)
	}
}

func TestAllocateRetriesOnCollision(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	taken := map[string]bool{"BILL-20250607-00001": true}
	var attempts []string
	persist := func(candidate string) error {
		attempts = append(attempts, candidate)
		if taken[candidate] {
			return ErrDuplicateBillID
		}
		taken[candidate] = true
		return nil
	}

	pickup := time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)
	billID, err := allocator.Allocate(context.Background(), pickup, persist)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if billID != "BILL-20250607-00002" {
		t.Errorf("billID = %q, want BILL-20250607-00002", billID)
	}
	if len(attempts) != 2 {
		t.Errorf("persist called %d times, want 2", len(attempts))
	}
}

func TestAllocateExhaustsAfterBoundedRetries(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	calls := 0
	persist := func(string) error {
		calls++
		return fmt.Errorf("insert failed: %w", ErrDuplicateBillID)
	}

	pickup := time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)
	_, err := allocator.Allocate(context.Background(), pickup, persist)
	if !errors.Is(err, ErrBillAllocationExhausted) {
		t.Fatalf("want ErrBillAllocationExhausted, got %v", err)
	}
	if calls != utils.MaxBillAllocateRetries {
		t.Errorf("persist called %d times, want %d", calls, utils.MaxBillAllocateRetries)
	}
}

func TestAllocateStopsOnNonDuplicateError(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	storageDown := errors.New("connection reset")
	calls := 0
	persist := func(string) error {
		calls++
		return storageDown
	}

	pickup := time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)
	_, err := allocator.Allocate(context.Background(), pickup, persist)
	if !errors.Is(err, storageDown) {
		t.Fatalf("want the storage error back, got %v", err)
	}
	if calls != 1 {
		t.Errorf("persist called %d times, want 1", calls)
	}
}

// Two pickups racing on the same date prefix must converge on distinct ids.
func TestAllocateConcurrentPickupsGetDistinctIDs(t *testing.T) {
	reader := &fakeSequenceReader{max: map[string]int{}}
	allocator := NewBillAllocator(reader, newTestLogger(t))

	var mu sync.Mutex
	taken := map[string]bool{}
	persist := func(candidate string) error {
		mu.Lock()
		defer mu.Unlock()
		if taken[candidate] {
			return ErrDuplicateBillID
		}
		taken[candidate] = true
		return nil
	}

	pickup := time.Date(2025, 6, 7, 10, 30, 0, 0, time.UTC)
	results := make(chan string, 2)
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			billID, err := allocator.Allocate(context.Background(), pickup, persist)
			if err != nil {
				errs <- err
				return
			}
			results <- billID
		}()
	}

	ids := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			t.Fatalf("Allocate: %v", err)
		case id := <-results:
			if ids[id] {
				t.Fatalf("duplicate bill id handed out: %s", id)
			}
			ids[id] = true
		}
	}
}
