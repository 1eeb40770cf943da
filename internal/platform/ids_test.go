package platform

import "testing"

func TestDummyIDs(t *testing.T) {
	if !DummyWindowID().IsDummy() {
		t.Fatalf("expected DummyWindowID to be dummy")
	}
	if !DummyDeviceID().IsDummy() {
		t.Fatalf("expected DummyDeviceID to be dummy")
	}
	if !DummyMonitorID().IsDummy() {
		t.Fatalf("expected DummyMonitorID to be dummy")
	}
	if NewWindowID(NextInstance(), 0).IsDummy() {
		t.Fatalf("issued identity must not be dummy even with raw 0")
	}
}

func TestWindowID_CompareConsistentWithEquality(t *testing.T) {
	inst := NextInstance()
	a := NewWindowID(inst, 1)
	b := NewWindowID(inst, 2)
	a2 := NewWindowID(inst, 1)

	if a != a2 || a.Compare(a2) != 0 {
		t.Fatalf("expected equal identities to compare 0")
	}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 {
		t.Fatalf("expected %v < %v", a, b)
	}

	m := map[WindowID]string{a: "first"}
	if m[a2] != "first" {
		t.Fatalf("expected equal identity to hit the same map entry")
	}
}

func TestIDs_FromDifferentInstancesDiffer(t *testing.T) {
	a := NewWindowID(NextInstance(), 7)
	b := NewWindowID(NextInstance(), 7)
	if a == b {
		t.Fatalf("identities from different instances must not be equal")
	}

	d1 := NewDeviceID(NextInstance(), 1)
	d2 := NewDeviceID(NextInstance(), 1)
	if d1 == d2 || d1.Compare(d2) == 0 {
		t.Fatalf("device identities from different instances must differ")
	}
}
