package units_test

import (
	"testing"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		from     string
		to       string
		value    float64
		expected float64
	}{
		{"km/h", "m/s", 18, 5},
		{"g", "kg", 430, 0.43},
		{"g/cm**3", "kg/m**3", 1, 1000},
		{"g/cm^3", "kg/m^3", 1, 1000},
		{"kg m s^-2", "N", 3, 3},
		{"kW*h", "J", 1, 3.6e6},
		{"kW h", "MJ", 1, 3.6},
		{"J/(kg K)", "J/kg/K", 2, 2},
		{"mm", "m", 1500, 1.5},
		{"dam", "m", 2, 20},
		{"ms", "s", 250, 0.25},
		{"min", "s", 2, 120},
		{"h", "min", 1.5, 90},
		{"ft", "m", 1, 0.3048},
		{"mi", "km", 1, 1.609344},
		{"lb", "kg", 1, 0.45359237},
		{"atm", "kPa", 1, 101.325},
		{"bar", "Pa", 1, 1e5},
		{"deg", "rad", 180, 3.141592653589793},
		{"degC", "K", 20, 293.15},
		{"degF", "degC", 212, 100},
		{"K", "degC", 0, -273.15},
		{"1/s", "Hz", 50, 50},
		{"L", "m**3", 1000, 1},
		{"µm", "m", 1, 1e-6},
		{"meter/second", "km/h", 5, 18},
	}

	for _, tc := range testCases {
		t.Run(tc.from+" to "+tc.to, func(t *testing.T) {
			t.Parallel()

			actual, err := units.Convert(tc.value, tc.from, tc.to)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, actual, 1e-9*max(1, tc.expected))
		})
	}
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		str   string
		unit  string
		value float64
	}{
		{"18 km/h", "km/h", 18},
		{"430 g", "g", 430},
		{"1.2e3 kg/m**3", "kg/m**3", 1200},
		{"-4.5 m", "m", -4.5},
		{".5 s", "s", 0.5},
		{"7", "", 7},
	}

	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			t.Parallel()

			quantity, err := units.ParseQuantity(tc.str)
			require.NoError(t, err)
			assert.InDelta(t, tc.value, quantity.Value(), 1e-12)
			assert.Equal(t, tc.unit, quantity.Unit().String())
		})
	}
}

func TestQuantityConvertTo(t *testing.T) {
	t.Parallel()

	quantity, err := units.ParseQuantity("18 km/h")
	require.NoError(t, err)

	converted, err := quantity.ConvertTo(units.MustParseUnit("m/s"))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, converted.Value(), 1e-12)
	assert.Equal(t, "5 m/s", converted.String())

	_, err = quantity.ConvertTo(units.MustParseUnit("kg"))

	var incompatible units.IncompatibleUnitsError
	require.True(t, errors.As(err, &incompatible))
	assert.Equal(t, "km/h", incompatible.From.String())
	assert.Contains(t, err.Error(), "[length] / [time]")
	assert.Contains(t, err.Error(), "[mass]")
}

func TestIsCompatible(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		a        string
		b        string
		expected bool
	}{
		{"km/h", "m/s", true},
		{"N", "kg*m/s**2", true},
		{"J", "eV", true},
		{"Pa", "psi", true},
		{"m", "s", false},
		{"kg/m**3", "kg/m**2", false},
		{"rad", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.a+" vs "+tc.b, func(t *testing.T) {
			t.Parallel()

			a, err := units.ParseUnit(tc.a)
			require.NoError(t, err)

			b, err := units.ParseUnit(tc.b)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, a.IsCompatible(b))
		})
	}
}

func TestParseUnitErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expr    string
		unknown bool
	}{
		{expr: "furlong", unknown: true},
		{expr: "km/parsec", unknown: true},
		{expr: "m**"},
		{expr: "m**1.5"},
		{expr: "(m/s"},
		{expr: "m/"},
		{expr: "m$"},
		{expr: "m 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()

			_, err := units.ParseUnit(tc.expr)
			require.Error(t, err)

			if tc.unknown {
				var unknown units.UnknownUnitError
				assert.True(t, errors.As(err, &unknown))

				return
			}

			var invalid units.InvalidUnitError
			assert.True(t, errors.As(err, &invalid))
		})
	}
}

func TestIsDefined(t *testing.T) {
	t.Parallel()

	assert.True(t, units.IsDefined("kg"))
	assert.True(t, units.IsDefined("kcal"))
	assert.False(t, units.IsDefined("kmin"))
	assert.False(t, units.IsDefined("da"))
}
