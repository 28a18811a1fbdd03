// Package rates holds the static rate and multiplier tables used to price cleaning jobs.
//
// Tables are read-only after package initialization. Lookups of unknown keys fail with a
// sentinel error instead of falling back to a default value.
package rates

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProjectType  = errors.New("unknown project type")
	ErrUnknownCleaningType = errors.New("unknown cleaning type")
	ErrUnknownService      = errors.New("unknown service category")
	ErrUnknownSurface      = errors.New("unknown pressure washing surface")
	ErrUnknownWindowTier   = errors.New("unknown window tier")
	ErrUrgencyOutOfRange   = errors.New("urgency level out of range")
)

const (
	MinUrgency = 1
	MaxUrgency = 10
)

// Table contains every rate the calculator reads.
type Table struct {
	BaseRate             decimal.Decimal // per sqft
	VCTRate              decimal.Decimal // per sqft
	TravelRate           decimal.Decimal // per mile, applied to the round trip
	HotelNightly         decimal.Decimal // per room night
	PerDiem              decimal.Decimal // per person per day
	DisplayCaseRate      decimal.Decimal // per case
	DefaultPressureRate  decimal.Decimal // per sqft, used without a per-surface breakdown
	PressureEquipmentFee decimal.Decimal // flat, once per job
	SalesTaxRate         decimal.Decimal
	MarkupRate           decimal.Decimal

	projects  map[ProjectType]decimal.Decimal
	cleanings map[CleaningType]decimal.Decimal
	surfaces  map[Surface]decimal.Decimal
	windows   map[WindowTier]decimal.Decimal
	urgency   [MaxUrgency]decimal.Decimal
}

var standard = newStandardTable()

// Standard returns the shared rate table.
func Standard() *Table {
	return standard
}

func newStandardTable() *Table {
	d := decimal.RequireFromString
	return &Table{
		BaseRate:             d("0.18"),
		VCTRate:              d("0.35"),
		TravelRate:           d("1.25"),
		HotelNightly:         d("150"),
		PerDiem:              d("65"),
		DisplayCaseRate:      d("25"),
		DefaultPressureRate:  d("0.25"),
		PressureEquipmentFee: d("150"),
		SalesTaxRate:         d("0.07"),
		MarkupRate:           d("0.50"),
		projects: map[ProjectType]decimal.Decimal{
			ProjectOffice:      d("1.00"),
			ProjectRetail:      d("1.00"),
			ProjectJewelry:     d("1.15"),
			ProjectRestaurant:  d("1.20"),
			ProjectMedical:     d("1.30"),
			ProjectEducational: d("1.10"),
			ProjectIndustrial:  d("1.25"),
			ProjectWarehouse:   d("0.90"),
			ProjectHospitality: d("1.15"),
			ProjectMultiFamily: d("1.05"),
		},
		cleanings: map[CleaningType]decimal.Decimal{
			CleaningRough:    d("0.80"),
			CleaningFinal:    d("1.00"),
			CleaningTouchUp:  d("0.50"),
			CleaningComplete: d("1.60"),
		},
		surfaces: map[Surface]decimal.Decimal{
			SurfaceConcrete:         d("0.25"),
			SurfaceBuildingExterior: d("0.30"),
			SurfaceStorefront:       d("0.35"),
			SurfaceParkingGarage:    d("0.20"),
			SurfaceDumpsterPad:      d("0.40"),
			SurfaceAwning:           d("0.45"),
		},
		windows: map[WindowTier]decimal.Decimal{
			WindowStandard:   d("8"),
			WindowLarge:      d("12"),
			WindowHighAccess: d("20"),
		},
		urgency: [MaxUrgency]decimal.Decimal{
			d("1.00"), d("1.05"), d("1.10"), d("1.15"), d("1.20"),
			d("1.30"), d("1.40"), d("1.50"), d("1.75"), d("2.00"),
		},
	}
}

func (t *Table) ProjectMultiplier(p ProjectType) (decimal.Decimal, error) {
	m, ok := t.projects[p]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownProjectType, p)
	}
	return m, nil
}

func (t *Table) CleaningMultiplier(c CleaningType) (decimal.Decimal, error) {
	m, ok := t.cleanings[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCleaningType, c)
	}
	return m, nil
}

func (t *Table) SurfaceRate(s Surface) (decimal.Decimal, error) {
	r, ok := t.surfaces[s]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownSurface, s)
	}
	return r, nil
}

func (t *Table) WindowRate(w WindowTier) (decimal.Decimal, error) {
	r, ok := t.windows[w]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownWindowTier, w)
	}
	return r, nil
}

// UrgencyMultiplier returns the rush factor for a level between MinUrgency and MaxUrgency.
func (t *Table) UrgencyMultiplier(level int) (decimal.Decimal, error) {
	if level < MinUrgency || level > MaxUrgency {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUrgencyOutOfRange, level)
	}
	return t.urgency[level-1], nil
}

// Entry is a single named rate, used for listings.
type Entry struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// Listing returns every table in a stable order for display.
func (t *Table) Listing() map[string][]Entry {
	out := map[string][]Entry{
		"project_multipliers":  {},
		"cleaning_multipliers": {},
		"surface_rates":        {},
		"window_rates":         {},
		"urgency_multipliers":  {},
	}
	for _, p := range ProjectTypes() {
		out["project_multipliers"] = append(out["project_multipliers"], Entry{string(p), t.projects[p]})
	}
	for _, c := range CleaningTypes() {
		out["cleaning_multipliers"] = append(out["cleaning_multipliers"], Entry{string(c), t.cleanings[c]})
	}
	for _, s := range Surfaces() {
		out["surface_rates"] = append(out["surface_rates"], Entry{string(s), t.surfaces[s]})
	}
	for _, w := range WindowTiers() {
		out["window_rates"] = append(out["window_rates"], Entry{string(w), t.windows[w]})
	}
	for i, m := range t.urgency {
		out["urgency_multipliers"] = append(out["urgency_multipliers"], Entry{fmt.Sprintf("%d", i+1), m})
	}
	out["scalars"] = []Entry{
		{"base_rate", t.BaseRate},
		{"vct_rate", t.VCTRate},
		{"travel_rate", t.TravelRate},
		{"hotel_nightly", t.HotelNightly},
		{"per_diem", t.PerDiem},
		{"display_case_rate", t.DisplayCaseRate},
		{"default_pressure_rate", t.DefaultPressureRate},
		{"pressure_equipment_fee", t.PressureEquipmentFee},
		{"sales_tax_rate", t.SalesTaxRate},
		{"markup_rate", t.MarkupRate},
	}
	return out
}
