package units

import (
	"math"
	"sort"
	"strings"
)

type definition struct {
	factor     float64
	offset     float64
	dim        Dimension
	prefixable bool
}

func base(index int) Dimension {
	var dim Dimension

	dim[index] = 1

	return dim
}

var (
	dimLength      = base(Length)
	dimMass        = base(Mass)
	dimTime        = base(Time)
	dimCurrent     = base(Current)
	dimTemperature = base(Temperature)

	dimArea     = dimLength.scale(2)
	dimVolume   = dimLength.scale(3)
	dimVelocity = dimLength.add(dimTime, -1)
	dimForce    = dimMass.add(dimLength, 1).add(dimTime.scale(2), -1)
	dimEnergy   = dimForce.add(dimLength, 1)
	dimPower    = dimEnergy.add(dimTime, -1)
	dimPressure = dimForce.add(dimArea, -1)
	dimCharge   = dimCurrent.add(dimTime, 1)
	dimVoltage  = dimPower.add(dimCurrent, -1)
)

const (
	calorie = 4.184
	pound   = 0.45359237
	foot    = 0.3048
	gravity = 9.80665
)

var prefixes = map[string]float64{
	"Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15, "T": 1e12, "G": 1e9, "M": 1e6,
	"k": 1e3, "h": 1e2, "da": 1e1,
	"d": 1e-1, "c": 1e-2, "m": 1e-3, "u": 1e-6, "µ": 1e-6, "n": 1e-9,
	"p": 1e-12, "f": 1e-15, "a": 1e-18, "z": 1e-21, "y": 1e-24,
}

// longest first so that "da" wins over "d"
var prefixOrder = func() []string {
	keys := make([]string, 0, len(prefixes))
	for key := range prefixes {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	return keys
}()

func si(factor float64, dim Dimension) definition {
	return definition{factor: factor, dim: dim, prefixable: true}
}

func plain(factor float64, dim Dimension) definition {
	return definition{factor: factor, dim: dim}
}

var registry = map[string]definition{
	// base
	"m":   si(1, dimLength),
	"g":   si(1e-3, dimMass),
	"s":   si(1, dimTime),
	"A":   si(1, dimCurrent),
	"K":   si(1, dimTemperature),
	"mol": si(1, base(Amount)),
	"cd":  si(1, base(Luminosity)),

	// derived SI
	"N":   si(1, dimForce),
	"J":   si(1, dimEnergy),
	"W":   si(1, dimPower),
	"Pa":  si(1, dimPressure),
	"Hz":  si(1, dimTime.scale(-1)),
	"C":   si(1, dimCharge),
	"V":   si(1, dimVoltage),
	"ohm": si(1, dimVoltage.add(dimCurrent, -1)),
	"Ω":   si(1, dimVoltage.add(dimCurrent, -1)),
	"F":   si(1, dimCharge.add(dimVoltage, -1)),
	"S":   si(1, dimCurrent.add(dimVoltage, -1)),
	"Wb":  si(1, dimVoltage.add(dimTime, 1)),
	"T":   si(1, dimVoltage.add(dimTime, 1).add(dimArea, -1)),
	"H":   si(1, dimVoltage.add(dimTime, 1).add(dimCurrent, -1)),
	"rad": si(1, Dimension{}),
	"sr":  si(1, Dimension{}),

	// metric, non-SI
	"l":   si(1e-3, dimVolume),
	"L":   si(1e-3, dimVolume),
	"t":   si(1e3, dimMass),
	"bar": si(1e5, dimPressure),
	"eV":  si(1.602176634e-19, dimEnergy),
	"cal": si(calorie, dimEnergy),

	// time
	"min":  plain(60, dimTime),
	"h":    plain(3600, dimTime),
	"hr":   plain(3600, dimTime),
	"d":    plain(86400, dimTime),
	"week": plain(7*86400, dimTime),
	"year": plain(365.25*86400, dimTime),

	// imperial
	"inch": plain(0.0254, dimLength),
	"in":   plain(0.0254, dimLength),
	"ft":   plain(foot, dimLength),
	"yd":   plain(3*foot, dimLength),
	"mi":   plain(5280*foot, dimLength),
	"nmi":  plain(1852, dimLength),
	"mph":  plain(5280*foot/3600, dimVelocity),
	"knot": plain(1852.0/3600, dimVelocity),
	"lb":   plain(pound, dimMass),
	"oz":   plain(pound/16, dimMass),
	"lbf":  plain(pound*gravity, dimForce),
	"psi":  plain(pound*gravity/(0.0254*0.0254), dimPressure),
	"gal":  plain(3.785411784e-3, dimVolume),

	// other
	"atm":    plain(101325, dimPressure),
	"mmHg":   plain(133.322387415, dimPressure),
	"hp":     plain(745.69987158227022, dimPower),
	"deg":    plain(math.Pi/180, Dimension{}),
	"degree": plain(math.Pi/180, Dimension{}),
	"rpm":    plain(2*math.Pi/60, dimTime.scale(-1)),
	"degC":   {factor: 1, offset: 273.15, dim: dimTemperature},
	"degF":   {factor: 5.0 / 9, offset: 273.15 - 32*5.0/9, dim: dimTemperature},
	"degR":   plain(5.0/9, dimTemperature),

	// long names
	"meter":    si(1, dimLength),
	"metre":    si(1, dimLength),
	"gram":     si(1e-3, dimMass),
	"second":   si(1, dimTime),
	"ampere":   si(1, dimCurrent),
	"kelvin":   si(1, dimTemperature),
	"newton":   si(1, dimForce),
	"joule":    si(1, dimEnergy),
	"watt":     si(1, dimPower),
	"pascal":   si(1, dimPressure),
	"hertz":    si(1, dimTime.scale(-1)),
	"liter":    si(1e-3, dimVolume),
	"litre":    si(1e-3, dimVolume),
	"minute":   plain(60, dimTime),
	"hour":     plain(3600, dimTime),
	"day":      plain(86400, dimTime),
	"foot":     plain(foot, dimLength),
	"feet":     plain(foot, dimLength),
	"mile":     plain(5280*foot, dimLength),
	"pound":    plain(pound, dimMass),
	"radian":   si(1, Dimension{}),
	"celsius":  {factor: 1, offset: 273.15, dim: dimTemperature},
	"percent":  plain(0.01, Dimension{}),
	"dozen":    plain(12, Dimension{}),
	"calories": plain(calorie, dimEnergy),
}

// lookup finds a symbol, first as written, then as an SI prefix followed by a prefixable unit.
func lookup(symbol string) (definition, bool) {
	if def, ok := registry[symbol]; ok {
		return def, true
	}

	for _, prefix := range prefixOrder {
		rest, found := strings.CutPrefix(symbol, prefix)
		if !found || rest == "" {
			continue
		}

		if def, ok := registry[rest]; ok && def.prefixable {
			def.factor *= prefixes[prefix]
			return def, true
		}
	}

	return definition{}, false
}

// IsDefined returns true if symbol is a known unit, with or without an SI prefix.
func IsDefined(symbol string) bool {
	_, ok := lookup(symbol)
	return ok
}
