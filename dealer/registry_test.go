package dealer

import (
	"errors"
	"testing"
)

func TestRegistry_GetKnownNames(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range []string{"bitmap", "fisher_yates", "adaptive", "perfect"} {
		d, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", name, err)
		}
		if d == nil {
			t.Fatalf("Get(%q) returned nil dealer", name)
		}
	}
}

func TestRegistry_GetUnknownName(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Get("not_a_dealer")
	if !errors.Is(err, ErrUnknownDealer) {
		t.Fatalf("Get(unknown) error = %v, want ErrUnknownDealer", err)
	}
}

func TestRegistry_GetReturnsFreshInstances(t *testing.T) {
	r := NewRegistry(nil)
	d1, _ := r.Get("bitmap")
	d2, _ := r.Get("bitmap")
	if d1 == d2 {
		t.Fatalf("Get returned the same instance twice")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(nil)
	names := r.Names()
	if len(names) != 4 {
		t.Fatalf("Names() = %v, want 4 entries", names)
	}
}
