package table

import "testing"

func TestUncontrolledFieldAppliesMapAgainstCurrentValue(t *testing.T) {
	f := NewUncontrolledField(10)
	f.Apply(Map(func(prev int) int { return prev + 5 }))
	if got := f.Get(); got != 15 {
		t.Errorf("got %d, want 15", got)
	}
}

func TestUncontrolledFieldSet(t *testing.T) {
	f := NewUncontrolledField("a")
	f.Apply(Set("b"))
	if got := f.Get(); got != "b" {
		t.Errorf("got %q, want b", got)
	}
}

func TestControlledFieldForwardsUpdaterUnchanged(t *testing.T) {
	var received Updater[int]
	got := false
	f := NewControlledField(func(u Updater[int]) {
		received = u
		got = true
	})
	f.Sync(3)
	f.Apply(Map(func(prev int) int { return prev * 2 }))
	if !got {
		t.Fatal("expected callback to be invoked")
	}
	if f.Get() != 3 {
		t.Errorf("controlled field value should not change locally, got %d", f.Get())
	}
	if received.Apply(3) != 6 {
		t.Errorf("forwarded updater should still resolve correctly, got %d", received.Apply(3))
	}
}

func TestControlledFieldSyncReflectsHostState(t *testing.T) {
	f := NewControlledField(func(u Updater[int]) {})
	f.Sync(1)
	f.Sync(2)
	if got := f.Get(); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
