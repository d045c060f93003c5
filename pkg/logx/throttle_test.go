package logx

import "testing"

func TestThrottleBurst(t *testing.T) {
	t.Parallel()

	// Effectively no refill within the test.
	th := NewThrottle(0.0001, 2)
	if !th.Allow() || !th.Allow() {
		t.Fatal("burst must be allowed")
	}
	if th.Allow() {
		t.Error("third call must be throttled")
	}
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	var zero Logger
	if !zero.IsZero() {
		t.Error("zero value must report IsZero")
	}
	// Must not panic.
	zero.Info("ignored", String("k", "v"))
	Nop().Warn("ignored", Err(nil))

	if Nop().With(String("k", "v")).IsZero() {
		t.Error("a logger with fields is not the zero value")
	}
}
