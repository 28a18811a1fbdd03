// Package pricing computes itemized cleaning estimates and redistributes markups and
// markdowns across their line items.
//
// All functions are pure: they read the rate table and their arguments only, so they can be
// called concurrently without coordination.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/cleanquote/internal/rates"
)

// SurfaceCost is the display detail for one pressure washing surface.
type SurfaceCost struct {
	Surface rates.Surface   `json:"surface"`
	Area    float64         `json:"area"`
	Rate    decimal.Decimal `json:"rate"`
	Cost    decimal.Decimal `json:"cost"`
}

// WindowDetail shows the window quantities and their priced value. Counts are kept even
// when window cleaning is quoted separately and not charged.
type WindowDetail struct {
	Standard       int             `json:"standard"`
	Large          int             `json:"large"`
	HighAccess     int             `json:"high_access"`
	StandardCost   decimal.Decimal `json:"standard_cost"`
	LargeCost      decimal.Decimal `json:"large_cost"`
	HighAccessCost decimal.Decimal `json:"high_access_cost"`
	Charged        bool            `json:"charged"`
}

// ServiceDetails is display-only information attached to a breakdown. It does not take part
// in adjustment.
type ServiceDetails struct {
	PressureWashing     []SurfaceCost   `json:"pressure_washing,omitempty"`
	PressureWashingArea float64         `json:"pressure_washing_area"`
	EquipmentFee        decimal.Decimal `json:"equipment_fee"`
	Windows             *WindowDetail   `json:"windows,omitempty"`
	DisplayCases        int             `json:"display_cases"`
}

// Breakdown is the canonical priced estimate for one job.
type Breakdown struct {
	Items          LineItems `json:"line_items"`
	Participating  Selection `json:"participating"`
	WindowsCharged bool      `json:"windows_charged"`

	UrgencyMultiplier  decimal.Decimal `json:"urgency_multiplier"`
	TotalBeforeMarkup  decimal.Decimal `json:"total_before_markup"`
	MarkupAmount       decimal.Decimal `json:"markup_amount"`
	SalesTax           decimal.Decimal `json:"sales_tax"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	EstimatedHours     int             `json:"estimated_hours"`
	PricePerSquareFoot decimal.Decimal `json:"price_per_square_foot"`

	Details ServiceDetails `json:"details"`
}

// Calculator prices jobs against a rate table.
type Calculator struct {
	rates *rates.Table
}

func NewCalculator(table *rates.Table) *Calculator {
	return &Calculator{rates: table}
}

var defaultCalculator = NewCalculator(rates.Standard())

// Compute prices a job with the standard rate table.
func Compute(job JobDescription) (Breakdown, error) {
	return defaultCalculator.Compute(job)
}

// Compute derives the itemized breakdown for a job. Unknown enum values fail with the
// matching rates sentinel error; negative quantities are not checked here.
func (c *Calculator) Compute(job JobDescription) (Breakdown, error) {
	t := c.rates

	if !job.ServiceCategory.Valid() {
		return Breakdown{}, fmt.Errorf("compute estimate: %w: %q", rates.ErrUnknownService, job.ServiceCategory)
	}
	projectMult, err := t.ProjectMultiplier(job.ProjectType)
	if err != nil {
		return Breakdown{}, fmt.Errorf("compute estimate: %w", err)
	}
	cleaningMult, err := t.CleaningMultiplier(job.CleaningType)
	if err != nil {
		return Breakdown{}, fmt.Errorf("compute estimate: %w", err)
	}
	urgencyMult, err := t.UrgencyMultiplier(job.UrgencyLevel)
	if err != nil {
		return Breakdown{}, fmt.Errorf("compute estimate: %w", err)
	}

	var b Breakdown
	b.UrgencyMultiplier = urgencyMult
	area := decimal.NewFromFloat(job.SquareFootage)
	standardClean := job.ServiceCategory.IncludesStandardClean()
	displayCases := standardClean && job.ProjectType.DisplayCaseRetail() && job.DisplayCases > 0

	if standardClean {
		base := area.Mul(t.BaseRate).Mul(projectMult).Mul(cleaningMult)
		if displayCases {
			caseCost := t.DisplayCaseRate.Mul(decimal.NewFromInt(int64(job.DisplayCases)))
			b.Items[DisplayCaseCost] = roundCents(caseCost)
			base = ceilToFive(base.Add(caseCost))
			b.Details.DisplayCases = job.DisplayCases
		}
		b.Items[BasePrice] = roundCents(base)
	}

	if job.VCT {
		b.Items[VCTCost] = roundCents(area.Mul(t.VCTRate))
	}

	roundTrip := decimal.NewFromFloat(job.DistanceMiles).Mul(decimal.NewFromInt(2))
	b.Items[TravelCost] = roundCents(roundTrip.Mul(t.TravelRate))

	if job.Overnight {
		perNight := t.HotelNightly.Add(t.PerDiem)
		b.Items[OvernightCost] = roundCents(perNight.
			Mul(decimal.NewFromInt(int64(job.Nights))).
			Mul(decimal.NewFromInt(int64(job.CrewSize))))
	}

	if job.PressureWashing {
		cost, err := c.pressureWashing(job, &b.Details)
		if err != nil {
			return Breakdown{}, fmt.Errorf("compute estimate: %w", err)
		}
		b.Items[PressureWashingCost] = cost
	}

	if job.WindowCleaning {
		cost, detail, err := c.windows(job)
		if err != nil {
			return Breakdown{}, fmt.Errorf("compute estimate: %w", err)
		}
		b.Details.Windows = detail
		if job.ChargeWindows {
			b.Items[WindowCleaningCost] = cost
			b.WindowsCharged = true
		}
	}

	services := b.Items[BasePrice].
		Add(b.Items[VCTCost]).
		Add(b.Items[TravelCost]).
		Add(b.Items[OvernightCost]).
		Add(b.Items[PressureWashingCost]).
		Add(b.Items[WindowCleaningCost])
	b.Items[UrgencyCost] = roundCents(services.Mul(urgencyMult.Sub(decimal.NewFromInt(1))))

	b.TotalBeforeMarkup = services.Add(b.Items[UrgencyCost])
	if job.ApplyMarkup {
		b.MarkupAmount = roundCents(b.TotalBeforeMarkup.Mul(t.MarkupRate))
	}
	b.SalesTax = roundCents(b.TotalBeforeMarkup.Add(b.MarkupAmount).Mul(t.SalesTaxRate))
	b.TotalPrice = b.TotalBeforeMarkup.Add(b.MarkupAmount).Add(b.SalesTax)

	b.EstimatedHours = estimateHours(job, b.Details.PressureWashingArea, displayCases)
	b.PricePerSquareFoot = pricePerSquareFoot(job, b.TotalPrice, b.Details.PressureWashingArea)

	b.Participating = NewSelection(BasePrice, TravelCost)
	b.Participating[VCTCost] = job.VCT
	b.Participating[OvernightCost] = job.Overnight
	b.Participating[PressureWashingCost] = job.PressureWashing
	b.Participating[WindowCleaningCost] = b.WindowsCharged
	b.Participating[UrgencyCost] = urgencyMult.GreaterThan(decimal.NewFromInt(1))

	return b, nil
}

// pressureWashing prices each requested surface, or the aggregate area at the default rate
// when no per-surface breakdown was given. The equipment fee is added once.
func (c *Calculator) pressureWashing(job JobDescription, details *ServiceDetails) (decimal.Decimal, error) {
	t := c.rates
	total := decimal.Zero

	if len(job.PressureWashingServices) == 0 {
		details.PressureWashingArea = job.PressureWashingArea
		total = decimal.NewFromFloat(job.PressureWashingArea).Mul(t.DefaultPressureRate)
	} else {
		index := make(map[rates.Surface]int, len(job.PressureWashingServices))
		for _, svc := range job.PressureWashingServices {
			rate, err := t.SurfaceRate(svc.Surface)
			if err != nil {
				return decimal.Zero, err
			}
			cost := decimal.NewFromFloat(svc.Area).Mul(rate)
			total = total.Add(cost)
			details.PressureWashingArea += svc.Area

			if i, ok := index[svc.Surface]; ok {
				details.PressureWashing[i].Area += svc.Area
				details.PressureWashing[i].Cost = roundCents(details.PressureWashing[i].Cost.Add(cost))
				continue
			}
			index[svc.Surface] = len(details.PressureWashing)
			details.PressureWashing = append(details.PressureWashing, SurfaceCost{
				Surface: svc.Surface,
				Area:    svc.Area,
				Rate:    rate,
				Cost:    roundCents(cost),
			})
		}
	}

	details.EquipmentFee = t.PressureEquipmentFee
	return roundCents(total.Add(t.PressureEquipmentFee)), nil
}

func (c *Calculator) windows(job JobDescription) (decimal.Decimal, *WindowDetail, error) {
	t := c.rates
	detail := &WindowDetail{
		Standard:   job.StandardWindows,
		Large:      job.LargeWindows,
		HighAccess: job.HighAccessWindows,
		Charged:    job.ChargeWindows,
	}

	tiers := []struct {
		tier  rates.WindowTier
		count int
		cost  *decimal.Decimal
	}{
		{rates.WindowStandard, job.StandardWindows, &detail.StandardCost},
		{rates.WindowLarge, job.LargeWindows, &detail.LargeCost},
		{rates.WindowHighAccess, job.HighAccessWindows, &detail.HighAccessCost},
	}

	total := decimal.Zero
	for _, tr := range tiers {
		rate, err := t.WindowRate(tr.tier)
		if err != nil {
			return decimal.Zero, nil, err
		}
		*tr.cost = roundCents(rate.Mul(decimal.NewFromInt(int64(tr.count))))
		total = total.Add(*tr.cost)
	}
	return total, detail, nil
}

// estimateHours adds one rounded-up term per contributing service. Each term is rounded
// before summing.
func estimateHours(job JobDescription, pressureArea float64, displayCases bool) int {
	crew := job.CrewSize
	if crew < 1 {
		crew = 1
	}

	hours := 0
	if job.ServiceCategory.IncludesStandardClean() {
		hours += ceilInt(job.SquareFootage / float64(crew*500))
	}
	if job.VCT {
		hours += ceilInt(job.SquareFootage / float64(crew*1000))
	}
	if job.PressureWashing {
		hours += ceilInt(pressureArea / 1000)
	}
	if job.WindowCleaning {
		hours += ceilInt(float64(job.TotalWindows()) / 20)
	}
	if displayCases {
		hours += ceilInt(float64(job.DisplayCases) * 0.5)
	}
	return hours
}

func ceilInt(v float64) int {
	return int(math.Ceil(v))
}

func pricePerSquareFoot(job JobDescription, total decimal.Decimal, pressureArea float64) decimal.Decimal {
	var area float64
	switch job.ServiceCategory {
	case rates.ServicePressureWashingOnly:
		area = pressureArea
	case rates.ServiceWindowCleaningOnly:
		return decimal.Zero
	default:
		area = job.SquareFootage
	}
	if area <= 0 {
		return decimal.Zero
	}
	return roundCents(total.DivRound(decimal.NewFromFloat(area), shareScale))
}
