package domain

const kgToLb = 2.2046226218

// Weight units accepted for display. Ledger values are always stored in kg.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// UnitForSettings maps a settings units preference to a weight unit.
func UnitForSettings(s Settings) string {
	if s.Units == "imperial" {
		return UnitLb
	}
	return UnitKg
}

// KgTo converts a kg value to unit. Unknown units leave v unchanged.
func KgTo(v float64, unit string) float64 {
	if unit == UnitLb {
		return v * kgToLb
	}
	return v
}

// ToKg converts a value in unit to kg. Unknown units leave v unchanged.
func ToKg(v float64, unit string) float64 {
	if unit == UnitLb {
		return v / kgToLb
	}
	return v
}
