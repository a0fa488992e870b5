package directory

import (
	"testing"
)

func TestBindAndLookup(t *testing.T) {
	d := NewDirectory()

	d.Bind("conn1", "room_abc", "alice")

	b, ok := d.Lookup("conn1")
	if !ok {
		t.Fatal("Expected binding for conn1")
	}
	if b.RoomID != "room_abc" || b.Username != "alice" {
		t.Errorf("Unexpected binding: %+v", b)
	}
}

func TestLookupAbsent(t *testing.T) {
	d := NewDirectory()

	if _, ok := d.Lookup("conn1"); ok {
		t.Error("Lookup of an unbound connection should report absence")
	}
}

func TestBindOverwritesPriorBinding(t *testing.T) {
	d := NewDirectory()

	d.Bind("conn1", "room_abc", "alice")
	d.Bind("conn1", "room_def", "alice2")

	b, ok := d.Lookup("conn1")
	if !ok {
		t.Fatal("Expected binding for conn1")
	}
	if b.RoomID != "room_def" || b.Username != "alice2" {
		t.Errorf("Rebind should replace the old binding, got %+v", b)
	}
}

func TestUnbindReturnsPriorBinding(t *testing.T) {
	d := NewDirectory()
	d.Bind("conn1", "room_abc", "alice")

	b, ok := d.Unbind("conn1")
	if !ok {
		t.Fatal("Unbind should return the prior binding")
	}
	if b.RoomID != "room_abc" || b.Username != "alice" {
		t.Errorf("Unexpected binding: %+v", b)
	}

	if _, ok := d.Lookup("conn1"); ok {
		t.Error("Binding should be gone after Unbind")
	}

	if _, ok := d.Unbind("conn1"); ok {
		t.Error("Second Unbind should report absence")
	}
}
