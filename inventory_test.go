package rocketsim

import (
	"testing"

	kitlog "github.com/go-kit/kit/log"
)

func TestRocketInventory(t *testing.T) {
	inv := NewRocketInventory(kitlog.NewNopLogger())
	if inv.Len() != 0 {
		t.Fatalf("fresh inventory holds %d rockets", inv.Len())
	}

	if _, err := inv.Create("Vega", 55000, 28000, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := inv.Create("Atlas", 280000, 30000, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := inv.Create("Vega", 1, 1, 1); err == nil {
		t.Fatal("duplicate name accepted")
	}
	if _, err := inv.Create("", 1000, 1000, 1); err == nil {
		t.Fatal("invalid rocket accepted")
	}
	if inv.Len() != 2 {
		t.Fatalf("inventory holds %d rockets", inv.Len())
	}

	r, found := inv.Get("Vega")
	if !found || r.Name() != "Vega" {
		t.Fatalf("Get(Vega) = %v, %t", r, found)
	}
	if _, found := inv.Get("Proton"); found {
		t.Fatal("found a rocket never created")
	}

	names := inv.Names()
	if len(names) != 2 || names[0] != "Atlas" || names[1] != "Vega" {
		t.Fatalf("names not sorted: %v", names)
	}
	all := inv.All()
	if len(all) != 2 || all[0].Name() != "Atlas" {
		t.Fatalf("All not sorted by name: %v", all)
	}

	if !inv.Delete("Atlas") {
		t.Fatal("delete of existing rocket failed")
	}
	if inv.Delete("Atlas") {
		t.Fatal("delete of missing rocket succeeded")
	}
	if inv.Len() != 1 {
		t.Fatalf("inventory holds %d rockets after delete", inv.Len())
	}
}

func TestTargetInventory(t *testing.T) {
	inv := NewTargetInventory(nil)

	if _, err := inv.Create("Moon", 384400); err != nil {
		t.Fatal(err)
	}
	if _, err := inv.Create("ISS", 408); err != nil {
		t.Fatal(err)
	}
	if _, err := inv.Create("Moon", 1); err == nil {
		t.Fatal("duplicate name accepted")
	}
	if _, err := inv.Create("Void", -1); err == nil {
		t.Fatal("invalid target accepted")
	}

	// Lookups trim the way creation does.
	if _, found := inv.Get("  Moon  "); !found {
		t.Fatal("trimmed lookup failed")
	}

	names := inv.Names()
	if len(names) != 2 || names[0] != "ISS" || names[1] != "Moon" {
		t.Fatalf("names not sorted: %v", names)
	}

	if !inv.Delete("ISS") || inv.Len() != 1 {
		t.Fatal("delete failed")
	}
}
