// Package poolfile reads and writes pools in a line based text format:
//
//	group main
//	    rho = 1.2   ! kg/m**3   # density
//	    group body
//	        mass = 0.43   ! kg   # mass of body widget=float
//	        C_D = 0.2 & 0.4
//	    end
//
//	end
//
// A group starts with "group <name>" ("subpool" and "submenu" are read too) and ends
// with "end". An item line is
//
//	<name> [= v1 & v2 ...] [! unit] [# help [widget=<widget>]]
//
// Indentation is ignored when reading. Each of "=", "!" and "#" may occur at most once
// on a line, so values and help texts cannot contain them.
package poolfile

const (
	KeywordGroup   = "group"
	KeywordSubpool = "subpool"
	KeywordSubmenu = "submenu"
	KeywordEnd     = "end"

	DelimValue = "="
	DelimUnit  = "!"
	DelimHelp  = "#"

	widgetKey = "widget="
)
