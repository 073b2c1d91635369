package ui

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_SingleCall(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(150 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
}

func TestDebouncer_RapidCalls(t *testing.T) {
	var called int32
	var lastValue int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		debouncer.Debounce(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call for rapid succession, got %d", called)
	}
	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("Expected last value 10, got %d", lastValue)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var called int32
	debouncer := NewDebouncer(50 * time.Millisecond)

	debouncer.Debounce(func() {
		atomic.AddInt32(&called, 1)
	})
	debouncer.Cancel()

	time.Sleep(150 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}
}

func TestChangeDebouncer_CoalescesPaths(t *testing.T) {
	cd := NewChangeDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	var batches [][]string
	handler := func(paths []string) {
		mu.Lock()
		batches = append(batches, paths)
		mu.Unlock()
	}

	cd.Changed("a.yaml", handler)
	cd.Changed("b.yaml", handler)
	cd.Changed("a.yaml", handler)

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(batches) != 1 {
		t.Fatalf("Expected 1 batch, got %d", len(batches))
	}
	if len(batches[0]) != 2 || batches[0][0] != "a.yaml" || batches[0][1] != "b.yaml" {
		t.Errorf("Expected [a.yaml b.yaml], got %v", batches[0])
	}
}

func TestChangeDebouncer_Cancel(t *testing.T) {
	cd := NewChangeDebouncer(50 * time.Millisecond)
	var called int32
	cd.Changed("a.yaml", func([]string) { atomic.AddInt32(&called, 1) })
	cd.Cancel()

	time.Sleep(150 * time.Millisecond)
	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}
}
