package domain

import "strings"

// Station is the kitchen work area where waste was recorded.
type Station string

const (
	StationPasta     Station = "pasta"
	StationGrill     Station = "grill"
	StationMiddle    Station = "middle"
	StationSalumi    Station = "salumi"
	StationPastaPrep Station = "pasta_prep"
	StationOtherPrep Station = "other_prep"
)

// WasteType is the reason the product was thrown out.
type WasteType string

const (
	WasteTrim           WasteType = "trim"
	WasteSpoilage       WasteType = "spoilage"
	WasteOverproduction WasteType = "overproduction"
	WasteBurnt          WasteType = "burnt/overcooked"
)

// QuantityType is the unit a quantity was measured in.
type QuantityType string

const (
	QuantityPounds   QuantityType = "lbs"
	QuantityOunces   QuantityType = "oz"
	QuantityPortions QuantityType = "po"
	QuantityQuarts   QuantityType = "qt"
)

// UnitClass groups quantity types that can be summed together.
type UnitClass string

const (
	ClassWeight  UnitClass = "weight"
	ClassCount   UnitClass = "count"
	ClassVolume  UnitClass = "volume"
	ClassUnknown UnitClass = "unknown"
)

// OuncesPerPound is used when ounces are folded into pound totals.
const OuncesPerPound = 16.0

// AllStations returns the stations in menu order.
func AllStations() []Station {
	return []Station{
		StationPasta,
		StationGrill,
		StationMiddle,
		StationSalumi,
		StationPastaPrep,
		StationOtherPrep,
	}
}

// AllWasteTypes returns the waste types in menu order.
func AllWasteTypes() []WasteType {
	return []WasteType{
		WasteTrim,
		WasteSpoilage,
		WasteOverproduction,
		WasteBurnt,
	}
}

// AllQuantityTypes returns the units in menu order.
func AllQuantityTypes() []QuantityType {
	return []QuantityType{
		QuantityPounds,
		QuantityOunces,
		QuantityPortions,
		QuantityQuarts,
	}
}

func (s Station) Valid() bool {
	switch s {
	case StationPasta, StationGrill, StationMiddle, StationSalumi, StationPastaPrep, StationOtherPrep:
		return true
	}
	return false
}

func (s Station) Label() string {
	switch s {
	case StationPasta:
		return "Pasta"
	case StationGrill:
		return "Grill"
	case StationMiddle:
		return "Middle"
	case StationSalumi:
		return "Salumi"
	case StationPastaPrep:
		return "Pasta prep"
	case StationOtherPrep:
		return "Other prep"
	default:
		return string(s)
	}
}

func (w WasteType) Valid() bool {
	switch w {
	case WasteTrim, WasteSpoilage, WasteOverproduction, WasteBurnt:
		return true
	}
	return false
}

func (w WasteType) Label() string {
	switch w {
	case WasteTrim:
		return "Trim"
	case WasteSpoilage:
		return "Spoilage"
	case WasteOverproduction:
		return "Overproduction"
	case WasteBurnt:
		return "Burnt/overcooked"
	default:
		return string(w)
	}
}

// IsProblem reports whether the waste type counts toward problem waste.
// Trim is expected waste from normal prep; everything else is avoidable.
func (w WasteType) IsProblem() bool {
	return w != WasteTrim
}

func (q QuantityType) Valid() bool {
	switch q {
	case QuantityPounds, QuantityOunces, QuantityPortions, QuantityQuarts:
		return true
	}
	return false
}

func (q QuantityType) Label() string {
	switch q {
	case QuantityPounds:
		return "Pounds"
	case QuantityOunces:
		return "Ounces"
	case QuantityPortions:
		return "Portions"
	case QuantityQuarts:
		return "Quarts"
	default:
		return string(q)
	}
}

func (q QuantityType) Class() UnitClass {
	switch q {
	case QuantityPounds, QuantityOunces:
		return ClassWeight
	case QuantityPortions:
		return ClassCount
	case QuantityQuarts:
		return ClassVolume
	default:
		return ClassUnknown
	}
}

// ParseStation matches input against the station codes, ignoring case and
// surrounding whitespace.
func ParseStation(s string) (Station, error) {
	st := Station(normalize(s))
	if !st.Valid() {
		return "", ErrInvalidStation
	}
	return st, nil
}

func ParseWasteType(s string) (WasteType, error) {
	wt := WasteType(normalize(s))
	if !wt.Valid() {
		return "", ErrInvalidWasteType
	}
	return wt, nil
}

func ParseQuantityType(s string) (QuantityType, error) {
	qt := QuantityType(normalize(s))
	if !qt.Valid() {
		return "", ErrInvalidQuantityType
	}
	return qt, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
