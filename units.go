package scpi

import "strings"

// UnitDimension identifies the physical quantity a decimal-numeric-with-
// suffix value is expressed in (spec.md §4.3's "numeric with unit
// suffix" form: "a decimal-numeric-with-suffix is accepted if the suffix
// matches one of an enumerated table of unit mnemonics for that
// dimension"). Grounded on the original's per-quantity suffix tables
// (scpi/src/parser/suffix.rs's per-module impl_unit! invocations and
// scpi1999/unit/mod.rs's per-quantity enums), collapsed here into one
// flat mnemonic table per dimension rather than the original's
// compile-time unit algebra (the uom crate has no Go counterpart in the
// pack, so a suffix carries a plain multiplier/offset pair instead of a
// typed quantity).
type UnitDimension int

const (
	UnitVoltage UnitDimension = iota
	UnitCurrent
	UnitResistance
	UnitCapacitance
	UnitInductance
	UnitFrequency
	UnitTime
	UnitPower
	UnitEnergy
	UnitTemperature
	UnitAngle
	UnitRatio
)

// unitConversion maps a raw suffixed value to its dimension's SI base
// unit: base = raw*Multiplier + Offset. Offset is nonzero only for the
// affine temperature conversions (Celsius, Fahrenheit -> Kelvin).
type unitConversion struct {
	Multiplier float64
	Offset     float64
}

func linear(m float64) unitConversion { return unitConversion{Multiplier: m} }

// unitTables holds, per dimension, the accepted suffix mnemonics
// (upper-cased) and their conversion to the dimension's SI base unit.
// Each table mirrors one impl_unit! block of suffix.rs; SI-prefix
// variants (kilo/milli/micro/...) are listed explicitly the way that
// file lists them rather than derived from a shared prefix table, since
// not every dimension accepts every prefix (e.g. resistance has no
// "nano-ohm" entry in the original either).
var unitTables = map[UnitDimension]map[string]unitConversion{
	UnitVoltage: {
		"KV": linear(1e3), "V": linear(1), "MV": linear(1e-3), "UV": linear(1e-6),
	},
	UnitCurrent: {
		"KA": linear(1e3), "A": linear(1), "MA": linear(1e-3), "UA": linear(1e-6), "NA": linear(1e-9),
	},
	UnitResistance: {
		"GOHM": linear(1e9), "MOHM": linear(1e6), "KOHM": linear(1e3), "OHM": linear(1), "UOHM": linear(1e-6),
	},
	UnitCapacitance: {
		"F": linear(1), "MF": linear(1e-3), "UF": linear(1e-6), "NF": linear(1e-9), "PF": linear(1e-12),
	},
	UnitInductance: {
		"H": linear(1), "MH": linear(1e-3), "UH": linear(1e-6), "NH": linear(1e-9), "PH": linear(1e-12),
	},
	UnitFrequency: {
		"GHZ": linear(1e9), "MHZ": linear(1e6), "MAHZ": linear(1e6), "KHZ": linear(1e3), "HZ": linear(1),
	},
	UnitTime: {
		"S": linear(1), "MS": linear(1e-3), "US": linear(1e-6), "NS": linear(1e-9),
		"MIN": linear(60), "HR": linear(3600), "D": linear(86400),
	},
	UnitPower: {
		"MAW": linear(1e6), "KW": linear(1e3), "W": linear(1), "MW": linear(1e-3), "UW": linear(1e-6),
	},
	UnitEnergy: {
		"KJ": linear(1e3), "J": linear(1), "MJ": linear(1e-3), "UJ": linear(1e-6),
	},
	// Base unit Kelvin; Celsius and Fahrenheit need the additive term a
	// pure multiplier can't express (scpi/src/parser/suffix.rs's
	// thermodynamic_temperature table has the same three entries).
	UnitTemperature: {
		"K":   linear(1),
		"CEL": {Multiplier: 1, Offset: 273.15},
		"FAR": {Multiplier: 5.0 / 9.0, Offset: 255.3722222222222},
	},
	// Base unit radian.
	UnitAngle: {
		"RAD": linear(1),
		"DEG": linear(0.017453292519943295),
	},
	UnitRatio: {
		"PCT": linear(0.01),
		"PPM": linear(1e-6),
	},
}

// lookupUnit reports the conversion for suffix within dim, matched
// case-insensitively against the table built above.
func lookupUnit(dim UnitDimension, suffix []byte) (unitConversion, bool) {
	table, ok := unitTables[dim]
	if !ok {
		return unitConversion{}, false
	}
	c, ok := table[strings.ToUpper(string(suffix))]
	return c, ok
}
