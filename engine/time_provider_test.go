package engine

import (
	"strings"
	"testing"
	"time"
)

func TestTimeProvider(t *testing.T) {
	var clock Clock = NewTimeProvider()

	t1 := clock.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := clock.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}

	// Frame deltas rely on the monotonic reading, which Round(0) strips
	if s := t1.String(); !strings.Contains(s, "m=") {
		t.Errorf("Expected a monotonic reading, got %s", s)
	}
	if s := t1.Round(0).String(); strings.Contains(s, "m=") {
		t.Errorf("Expected stripped reading without monotonic part, got %s", s)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock Clock = NewMockTimeProvider(start)
	mock := clock.(*MockTimeProvider)

	if now := mock.Now(); !now.Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, now)
	}

	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(next)
	if now := mock.Now(); !now.Equal(next) {
		t.Errorf("Expected %v after SetTime, got %v", next, now)
	}

	if got := mock.Advance(time.Hour); !got.Equal(next.Add(time.Hour)) {
		t.Errorf("Advance returned %v, want %v", got, next.Add(time.Hour))
	}

	before := mock.Now()
	mock.Frame(50)
	if d := mock.Now().Sub(before); d != 20*time.Millisecond {
		t.Errorf("Expected a 20ms frame at 50 fps, got %v", d)
	}

	// Non-positive rates fall back to one frame per second
	before = mock.Now()
	mock.Frame(0)
	if d := mock.Now().Sub(before); d != time.Second {
		t.Errorf("Expected a 1s frame at 0 fps, got %v", d)
	}
}
