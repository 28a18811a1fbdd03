package rates

// ProjectType is the kind of building being cleaned.
type ProjectType string

const (
	ProjectOffice      ProjectType = "office"
	ProjectRetail      ProjectType = "retail"
	ProjectJewelry     ProjectType = "jewelry_store"
	ProjectRestaurant  ProjectType = "restaurant"
	ProjectMedical     ProjectType = "medical"
	ProjectEducational ProjectType = "educational"
	ProjectIndustrial  ProjectType = "industrial"
	ProjectWarehouse   ProjectType = "warehouse"
	ProjectHospitality ProjectType = "hospitality"
	ProjectMultiFamily ProjectType = "multi_family"
)

func ProjectTypes() []ProjectType {
	return []ProjectType{
		ProjectOffice, ProjectRetail, ProjectJewelry, ProjectRestaurant, ProjectMedical,
		ProjectEducational, ProjectIndustrial, ProjectWarehouse, ProjectHospitality, ProjectMultiFamily,
	}
}

func (p ProjectType) Valid() bool {
	_, ok := standard.projects[p]
	return ok
}

// DisplayCaseRetail reports whether display cases are priced into the base price.
func (p ProjectType) DisplayCaseRetail() bool {
	return p == ProjectJewelry
}

// CleaningType is the phase of cleaning requested.
type CleaningType string

const (
	CleaningRough    CleaningType = "rough"
	CleaningFinal    CleaningType = "final"
	CleaningTouchUp  CleaningType = "touch_up"
	CleaningComplete CleaningType = "complete"
)

func CleaningTypes() []CleaningType {
	return []CleaningType{CleaningRough, CleaningFinal, CleaningTouchUp, CleaningComplete}
}

func (c CleaningType) Valid() bool {
	_, ok := standard.cleanings[c]
	return ok
}

// ServiceCategory selects which services make up the job.
type ServiceCategory string

const (
	ServiceStandard            ServiceCategory = "standard"
	ServicePressureWashingOnly ServiceCategory = "pressure_washing_only"
	ServiceWindowCleaningOnly  ServiceCategory = "window_cleaning_only"
	ServiceCombination         ServiceCategory = "combination"
)

func ServiceCategories() []ServiceCategory {
	return []ServiceCategory{ServiceStandard, ServicePressureWashingOnly, ServiceWindowCleaningOnly, ServiceCombination}
}

func (s ServiceCategory) Valid() bool {
	switch s {
	case ServiceStandard, ServicePressureWashingOnly, ServiceWindowCleaningOnly, ServiceCombination:
		return true
	}
	return false
}

// IncludesStandardClean reports whether the category carries the area-based cleaning service.
func (s ServiceCategory) IncludesStandardClean() bool {
	return s == ServiceStandard || s == ServiceCombination
}

// Surface is a pressure washing surface type.
type Surface string

const (
	SurfaceConcrete         Surface = "concrete"
	SurfaceBuildingExterior Surface = "building_exterior"
	SurfaceStorefront       Surface = "storefront"
	SurfaceParkingGarage    Surface = "parking_garage"
	SurfaceDumpsterPad      Surface = "dumpster_pad"
	SurfaceAwning           Surface = "awning"
)

func Surfaces() []Surface {
	return []Surface{
		SurfaceConcrete, SurfaceBuildingExterior, SurfaceStorefront,
		SurfaceParkingGarage, SurfaceDumpsterPad, SurfaceAwning,
	}
}

func (s Surface) Valid() bool {
	_, ok := standard.surfaces[s]
	return ok
}

// WindowTier groups windows by how hard they are to reach.
type WindowTier string

const (
	WindowStandard   WindowTier = "standard"
	WindowLarge      WindowTier = "large"
	WindowHighAccess WindowTier = "high_access"
)

func WindowTiers() []WindowTier {
	return []WindowTier{WindowStandard, WindowLarge, WindowHighAccess}
}
