package personas

import "testing"

func TestLookup(t *testing.T) {
	p, ok := Lookup("buffett")
	if !ok {
		t.Fatal("expected buffett to exist")
	}
	if p.Name != "Warren Buffett" {
		t.Errorf("unexpected name: %s", p.Name)
	}
	if p.RiskProfile != "Conservative" {
		t.Errorf("unexpected risk profile: %s", p.RiskProfile)
	}

	if _, ok := Lookup("lynch"); ok {
		t.Error("expected unknown persona lookup to fail")
	}
}

func TestValid(t *testing.T) {
	for _, id := range []string{"buffett", "wood", "ackman", "gross"} {
		if !Valid(id) {
			t.Errorf("expected %s to be valid", id)
		}
	}
	if Valid("") {
		t.Error("empty id should not be valid")
	}
	if Valid("BUFFETT") {
		t.Error("ids are case-sensitive")
	}
}

func TestIDsSorted(t *testing.T) {
	ids := IDs()
	if len(ids) != 4 {
		t.Fatalf("expected 4 personas, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("ids not sorted: %v", ids)
		}
	}
}

func TestAllCompleteMetadata(t *testing.T) {
	for _, p := range All() {
		if p.ID == "" || p.Name == "" || p.Strategy == "" || p.RiskProfile == "" || p.TimeHorizon == "" {
			t.Errorf("persona %q has incomplete metadata", p.ID)
		}
		if len(p.KeyMetrics) == 0 {
			t.Errorf("persona %q has no key metrics", p.ID)
		}
	}
}
