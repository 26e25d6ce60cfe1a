// Package units parses physical units such as "km/h" or "kg/m**3", checks their
// dimensional compatibility and converts quantities between them.
//
// A unit expression is a product or quotient of (optionally SI-prefixed) unit symbols
// and numeric factors. Powers are written with `**` or `^`, parentheses group, and
// whitespace between two symbols multiplies them:
//
//	kg/m**3   J/(kg K)   m s^-2   1/s
//
// Offset units (degC, degF) convert absolute temperatures only when they are used alone.
// Inside a compound expression they act as temperature differences.
package units
