package rates

import (
	"errors"
	"testing"
)

func TestProjectMultiplier_UnknownFailsFast(t *testing.T) {
	_, err := Standard().ProjectMultiplier("castle")
	if !errors.Is(err, ErrUnknownProjectType) {
		t.Fatalf("expected ErrUnknownProjectType, got %v", err)
	}
}

func TestCleaningMultiplier_UnknownFailsFast(t *testing.T) {
	_, err := Standard().CleaningMultiplier("")
	if !errors.Is(err, ErrUnknownCleaningType) {
		t.Fatalf("expected ErrUnknownCleaningType, got %v", err)
	}
}

func TestSurfaceAndWindowRate_Unknown(t *testing.T) {
	if _, err := Standard().SurfaceRate("roof"); !errors.Is(err, ErrUnknownSurface) {
		t.Fatalf("expected ErrUnknownSurface, got %v", err)
	}
	if _, err := Standard().WindowRate("skylight"); !errors.Is(err, ErrUnknownWindowTier) {
		t.Fatalf("expected ErrUnknownWindowTier, got %v", err)
	}
}

func TestUrgencyMultiplier_RangeAndIncreasing(t *testing.T) {
	table := Standard()

	for _, level := range []int{0, 11, -3} {
		if _, err := table.UrgencyMultiplier(level); !errors.Is(err, ErrUrgencyOutOfRange) {
			t.Fatalf("level %d: expected ErrUrgencyOutOfRange, got %v", level, err)
		}
	}

	first, err := table.UrgencyMultiplier(1)
	if err != nil {
		t.Fatalf("level 1: %v", err)
	}
	if first.String() != "1" {
		t.Fatalf("level 1 multiplier = %s, want 1", first)
	}

	prev := first
	for level := 2; level <= MaxUrgency; level++ {
		m, err := table.UrgencyMultiplier(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if !m.GreaterThan(prev) {
			t.Fatalf("multiplier for level %d (%s) is not greater than level %d (%s)", level, m, level-1, prev)
		}
		prev = m
	}
}

func TestEveryEnumMemberHasARate(t *testing.T) {
	table := Standard()
	for _, p := range ProjectTypes() {
		if _, err := table.ProjectMultiplier(p); err != nil {
			t.Fatalf("project %q: %v", p, err)
		}
		if !p.Valid() {
			t.Fatalf("project %q reported invalid", p)
		}
	}
	for _, c := range CleaningTypes() {
		if _, err := table.CleaningMultiplier(c); err != nil {
			t.Fatalf("cleaning %q: %v", c, err)
		}
	}
	for _, s := range Surfaces() {
		if _, err := table.SurfaceRate(s); err != nil {
			t.Fatalf("surface %q: %v", s, err)
		}
	}
	for _, w := range WindowTiers() {
		if _, err := table.WindowRate(w); err != nil {
			t.Fatalf("window tier %q: %v", w, err)
		}
	}
}

func TestServiceCategory(t *testing.T) {
	tests := []struct {
		category ServiceCategory
		valid    bool
		standard bool
	}{
		{ServiceStandard, true, true},
		{ServiceCombination, true, true},
		{ServicePressureWashingOnly, true, false},
		{ServiceWindowCleaningOnly, true, false},
		{"deep_clean", false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := tt.category.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.category.IncludesStandardClean(); got != tt.standard {
				t.Errorf("IncludesStandardClean() = %v, want %v", got, tt.standard)
			}
		})
	}
}

func TestListingHasAllTables(t *testing.T) {
	listing := Standard().Listing()
	if got := len(listing["project_multipliers"]); got != len(ProjectTypes()) {
		t.Fatalf("project multipliers listed = %d, want %d", got, len(ProjectTypes()))
	}
	if got := len(listing["urgency_multipliers"]); got != MaxUrgency {
		t.Fatalf("urgency multipliers listed = %d, want %d", got, MaxUrgency)
	}
	if len(listing["scalars"]) == 0 {
		t.Fatalf("expected scalar rates in listing")
	}
}
