package pool

import "slices"

// Widget is a hint for graphical front ends about how to edit an item.
type Widget string

const (
	WidgetInteger      Widget = "integer"
	WidgetFloat        Widget = "float"
	WidgetRange        Widget = "range"
	WidgetIntegerRange Widget = "integer_range"
	WidgetTextline     Widget = "textline"
	WidgetTextarea     Widget = "textarea"
	WidgetCheckbox     Widget = "checkbox"
	WidgetSelect       Widget = "select"
	WidgetEmail        Widget = "email"
	WidgetHidden       Widget = "hidden"
	WidgetPassword     Widget = "password"
	WidgetFile         Widget = "file"
	WidgetURL          Widget = "url"
	WidgetTel          Widget = "tel"
)

// Widgets lists every allowed widget.
var Widgets = []Widget{
	WidgetInteger, WidgetFloat, WidgetRange, WidgetIntegerRange, WidgetTextline, WidgetTextarea,
	WidgetCheckbox, WidgetSelect, WidgetEmail, WidgetHidden, WidgetPassword, WidgetFile, WidgetURL, WidgetTel,
}

func (widget Widget) IsValid() bool {
	return slices.Contains(Widgets, widget)
}

// coercion returns the strategy implied by the widget, or CoerceAuto for none.
func (widget Widget) coercion() Coercion {
	switch widget {
	case WidgetFloat, WidgetRange:
		return CoerceFloat
	case WidgetInteger, WidgetIntegerRange:
		return CoerceInt
	case WidgetCheckbox:
		return CoerceBool
	case "":
		return CoerceAuto
	}

	return CoerceString
}
