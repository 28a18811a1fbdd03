package pricing

import "github.com/Simplici0/cleanquote/internal/rates"

// SurfaceArea is one pressure washing surface and the area to wash.
type SurfaceArea struct {
	Surface rates.Surface `json:"surface" validate:"required"`
	Area    float64       `json:"area" validate:"gte=0"`
}

// JobDescription is the caller-supplied description of a cleaning job.
//
// Quantities tied to an unset flag are ignored; they do not need to be zero.
type JobDescription struct {
	ProjectType     rates.ProjectType     `json:"project_type" validate:"required"`
	CleaningType    rates.CleaningType    `json:"cleaning_type" validate:"required"`
	ServiceCategory rates.ServiceCategory `json:"service_category" validate:"required"`
	SquareFootage   float64               `json:"square_footage" validate:"gte=0"`

	VCT                 bool    `json:"vct"`
	PressureWashing     bool    `json:"pressure_washing"`
	WindowCleaning      bool    `json:"window_cleaning"`
	ChargeWindows       bool    `json:"charge_window_cleaning"`
	Overnight           bool    `json:"overnight"`
	ApplyMarkup         bool    `json:"apply_markup"`
	PressureWashingArea float64 `json:"pressure_washing_area" validate:"gte=0"`

	PressureWashingServices []SurfaceArea `json:"pressure_washing_services,omitempty" validate:"dive"`

	StandardWindows   int `json:"standard_windows" validate:"gte=0"`
	LargeWindows      int `json:"large_windows" validate:"gte=0"`
	HighAccessWindows int `json:"high_access_windows" validate:"gte=0"`

	Nights       int `json:"nights" validate:"gte=0"`
	CrewSize     int `json:"crew_size" validate:"gte=0"`
	DisplayCases int `json:"display_cases" validate:"gte=0"`

	DistanceMiles float64 `json:"distance_miles" validate:"gte=0"`
	UrgencyLevel  int     `json:"urgency_level" validate:"min=1,max=10"`
}

// TotalWindows counts windows across all tiers.
func (j JobDescription) TotalWindows() int {
	return j.StandardWindows + j.LargeWindows + j.HighAccessWindows
}
