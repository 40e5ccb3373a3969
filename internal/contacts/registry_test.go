package contacts

import "testing"

func TestRegistryOrderAndDedup(t *testing.T) {
	r := NewRegistry()
	for _, id := range []int64{30, 10, 20, 10, 30} {
		r.Remember(id)
	}
	got := r.Known()
	want := []int64{30, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("Known() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Known()[%d] = %d, want %d (first-seen order)", i, got[i], want[i])
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRegistryIgnoresZero(t *testing.T) {
	r := NewRegistry()
	r.Remember(0)
	if r.Len() != 0 {
		t.Error("zero chat id must not be recorded")
	}
}

func TestKnownReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Remember(1)
	r.Remember(2)
	k := r.Known()
	k[0] = 99
	if r.Known()[0] != 1 {
		t.Error("Known must return a copy")
	}
}
