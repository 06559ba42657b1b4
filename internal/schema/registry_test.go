package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	db := testDatabase()

	if err := r.Register(db); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := r.Get("pantry")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != db {
		t.Error("Get should return the registered database")
	}
}

func TestRegistryRegisterRejectsUnnamed(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Error("Register(nil) expected error")
	}
	if err := r.Register(&Database{}); err == nil {
		t.Error("Register of unnamed database expected error")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	first := &Database{Name: "pantry", Description: "old"}
	second := &Database{Name: "pantry", Description: "new"}

	if err := r.Register(first); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(second); err != nil {
		t.Fatal(err)
	}
	got, err := r.Get("pantry")
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "new" {
		t.Errorf("Description = %q, want replacement to win", got.Description)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Database{Name: "wines"}); err != nil {
		t.Fatal(err)
	}

	_, err := r.Get("spirits")
	var unknown *UnknownDatabaseError
	if !errors.As(err, &unknown) {
		t.Fatalf("Get error = %v, want *UnknownDatabaseError", err)
	}
	if unknown.Name != "spirits" {
		t.Errorf("Name = %q, want spirits", unknown.Name)
	}
	if !reflect.DeepEqual(unknown.Available, []string{"wines"}) {
		t.Errorf("Available = %v, want [wines]", unknown.Available)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"wines", "bottle_inventory", "syrups_and_juices"} {
		if err := r.Register(&Database{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"bottle_inventory", "syrups_and_juices", "wines"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}

	all := r.All()
	for i, db := range all {
		if db.Name != want[i] {
			t.Errorf("All[%d].Name = %q, want %q", i, db.Name, want[i])
		}
	}
}

func TestRegistryConcurrentRegister(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = r.Register(&Database{Name: fmt.Sprintf("db_%02d", n)})
		}(i)
	}
	wg.Wait()

	if r.Len() != 20 {
		t.Errorf("Len = %d, want 20 after concurrent registration", r.Len())
	}
}
