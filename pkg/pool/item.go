package pool

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/huandu/go-clone"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/internal/expr"
	"github.com/gruntwork-io/parampool/pkg/log"
	"github.com/gruntwork-io/parampool/pkg/units"
)

// numberWithUnit matches "18 km/h" or "1.2e3 kg/m**3".
var numberWithUnit = regexp.MustCompile(`^\s*([Ee.0-9+-]+) +([A-Za-z0-9*/^()]+)\s*$`)

// DataItem is a named parameter with a default, optional unit and value domain, and
// one or more current values.
type DataItem struct {
	logger   log.Logger
	attrs    Attributes
	values   []any
	defaults Defaults
	assigned bool
}

// ItemOption configures a DataItem.
type ItemOption func(item *DataItem)

// WithItemDefaults sets the defaults for attributes the item leaves unset.
func WithItemDefaults(defaults Defaults) ItemOption {
	return func(item *DataItem) {
		item.defaults = defaults
	}
}

// WithItemLogger sets the logger reporting assignments.
func WithItemLogger(logger log.Logger) ItemOption {
	return func(item *DataItem) {
		item.logger = logger
	}
}

// NewDataItem resolves the coercion strategy and widget of attrs, validates them and
// returns the item holding its default as only value. An initial Value is assigned last.
func NewDataItem(attrs Attributes, opts ...ItemOption) (*DataItem, error) {
	item := &DataItem{
		attrs:    attrs,
		defaults: DefaultDefaults(),
		logger:   log.Discard(),
	}

	for _, opt := range opts {
		opt(item)
	}

	defaults, err := item.defaults.Complete()
	if err != nil {
		return nil, err
	}

	item.defaults = defaults

	if err := item.resolve(); err != nil {
		return nil, err
	}

	item.logger = item.logger.WithField(log.FieldKeyItem, attrs.Name)
	item.values = []any{clone.Clone(attrs.Default)}

	if attrs.Value != nil {
		if err := item.Assign(attrs.Value); err != nil {
			return nil, err
		}
	}

	return item, nil
}

// NewDataItemFromMap is NewDataItem for attributes given as a map, see DecodeAttributes.
func NewDataItemFromMap(input map[string]any, opts ...ItemOption) (*DataItem, error) {
	attrs, err := DecodeAttributes(input)
	if err != nil {
		return nil, err
	}

	return NewDataItem(attrs, opts...)
}

func (item *DataItem) resolve() error {
	attrs := &item.attrs

	// An item without default is a required input and reads expressions.
	if attrs.Default == nil && attrs.Widget != WidgetFile && attrs.Widget != WidgetPassword {
		attrs.Widget = WidgetTextline

		if attrs.Coercion == CoerceAuto && attrs.Convert == nil {
			attrs.Coercion = CoerceExpression
		}
	}

	switch {
	case attrs.Convert != nil:
		attrs.Coercion = CoerceFunc
	case attrs.Coercion == CoerceFunc:
		return errors.New(InvalidAttributeError{Item: attrs.Name, Attribute: "str2type", Reason: "func requires a Convert function"})
	case attrs.Coercion != CoerceAuto:
	case attrs.Widget != "":
		attrs.Coercion = attrs.Widget.coercion()
	default:
		attrs.Coercion = coercionOf(attrs.Default)
	}

	if attrs.Widget == "" {
		attrs.Widget = item.inferWidget()
	}

	if err := attrs.check(); err != nil {
		return err
	}

	if attrs.Unit != "" {
		if _, err := units.ParseUnit(attrs.Unit); err != nil {
			return errors.New(InvalidAttributeError{Item: attrs.Name, Attribute: "unit", Reason: err.Error()})
		}

		attrs.Widget = WidgetTextline
	}

	return nil
}

func coercionOf(value any) Coercion {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Invalid, reflect.String:
		return CoerceString
	case reflect.Bool:
		return CoerceBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return CoerceInt
	case reflect.Float32, reflect.Float64:
		return CoerceFloat
	}

	return CoerceExpression
}

func (item *DataItem) inferWidget() Widget {
	attrs := item.attrs

	switch {
	case attrs.Coercion == CoerceBool:
		return WidgetCheckbox
	case attrs.Coercion == CoerceFloat && attrs.MinMax != nil:
		return WidgetFloat
	case attrs.Coercion == CoerceInt && attrs.MinMax != nil:
		return WidgetInteger
	case attrs.Coercion.isNumeric():
		return WidgetTextline
	case attrs.Options != nil:
		return WidgetSelect
	}

	return WidgetTextline
}

// Name implements tree.Item.
func (item *DataItem) Name() string {
	return item.attrs.Name
}

// Kind is shown in the listing of a group.
func (item *DataItem) Kind() string {
	return "DataItem"
}

// SetValue splits raw on the separator and runs every sub-value through unit conversion,
// coercion and validation. The commit policy decides what is kept when a sub-value fails.
func (item *DataItem) SetValue(raw string) error {
	subValues := item.split(raw)
	unit := item.attrs.Unit

	switch item.defaults.CommitPolicy {
	case AllOrNothing:
		values := make([]any, 0, len(subValues))

		for _, sub := range subValues {
			value, detected, err := item.process(sub, unit)
			if err != nil {
				item.logger.Debugf("Rejected %q: %v", raw, err)
				return err
			}

			unit = detected
			values = append(values, value)
		}

		item.commit(values, unit)
	default:
		values := item.Values()

		for j, sub := range subValues {
			value, detected, err := item.process(sub, unit)
			if err != nil {
				item.logger.Debugf("Rejected sub-value %d of %q, %d sub-values kept: %v", j, raw, j, err)
				return err
			}

			unit = detected

			if j < len(values) {
				values[j] = value
			} else {
				values = append(values, value)
			}

			item.commit(slices.Clone(values), unit)
		}

		item.commit(values[:len(subValues)], unit)
	}

	item.logger.Debugf("Assigned %v", item.values)

	return nil
}

// commit stores accepted values. A unit first seen in them becomes the registered unit.
func (item *DataItem) commit(values []any, unit string) {
	item.values = values
	item.assigned = true

	item.registerUnit(unit)
}

func (item *DataItem) registerUnit(unit string) {
	if item.attrs.Unit != "" || unit == "" {
		return
	}

	item.attrs.Unit = unit
	item.logger.Debugf("Registered unit %s", unit)
}

func (item *DataItem) split(raw string) []string {
	if !strings.Contains(raw, item.defaults.Separator) {
		return []string{strings.TrimSpace(raw)}
	}

	parts := strings.Split(raw, item.defaults.Separator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// Assign sets a single typed value without string coercion. The value must have the type
// of the default, a float64 is also accepted for an int default. Strings go through SetValue.
func (item *DataItem) Assign(value any) error {
	if raw, ok := value.(string); ok {
		return item.SetValue(raw)
	}

	if def := item.attrs.Default; def != nil && reflect.TypeOf(def) != reflect.TypeOf(value) {
		_, isFloat := value.(float64)
		if !isFloat || coercionOf(def) != CoerceInt {
			return errors.New(TypeCoercionError{
				Item:     item.Name(),
				Value:    fmt.Sprintf("%v", value),
				Coercion: item.attrs.Coercion,
				Err:      errors.Errorf("value of type %T must be a string or %T", value, def),
			})
		}
	}

	if err := item.validate(value); err != nil {
		return err
	}

	item.commit([]any{clone.Clone(value)}, item.attrs.Unit)
	item.logger.Debugf("Assigned %v", item.values)

	return nil
}

// SetDefault runs raw as a single value through the pipeline and makes it the default.
// Current values are left alone.
func (item *DataItem) SetDefault(raw string) error {
	value, unit, err := item.process(strings.TrimSpace(raw), item.attrs.Unit)
	if err != nil {
		return err
	}

	item.attrs.Default = value
	item.registerUnit(unit)
	item.logger.Debugf("Default set to %v", value)

	return nil
}

// process runs one sub-value through the pipeline. unit is the registered unit, or the
// unit detected in an earlier sub-value of the same assignment; the returned unit is the
// one to register when the value is committed.
func (item *DataItem) process(raw, unit string) (any, string, error) {
	if item.attrs.Coercion.isNumeric() || item.attrs.Coercion == CoerceExpression || unit != "" {
		converted, detected, err := item.convertUnit(raw, unit)
		if err != nil {
			return nil, unit, err
		}

		raw, unit = converted, detected
	}

	value, err := item.coerce(raw)
	if err != nil {
		return nil, unit, err
	}

	if err := item.validate(value); err != nil {
		return nil, unit, err
	}

	return value, unit, nil
}

// convertUnit turns "<number> <unit>" into the number expressed in unit. Without a unit the
// one in raw is returned as the unit to register.
func (item *DataItem) convertUnit(raw, unit string) (string, string, error) {
	namespace := item.attrs.Namespace

	if expr.LooksLikeExpression(raw, namespace) && strings.Contains(raw, " ") {
		if parts := strings.Fields(raw); len(parts) == 2 && expr.LooksLikeExpression(parts[0], namespace) {
			if value, err := expr.Evaluate(parts[0], namespace); err == nil {
				raw = fmt.Sprintf("%v %s", value, parts[1])
			}
		}
	}

	match := numberWithUnit.FindStringSubmatch(raw)
	if match == nil || !strings.ContainsFunc(match[2], unicode.IsLetter) {
		return raw, unit, nil
	}

	quantity, err := units.ParseQuantity(raw)
	if err != nil {
		return "", unit, errors.New(UnitIncompatibilityError{Item: item.Name(), Value: raw, Unit: match[2], Err: err})
	}

	if unit == "" {
		return formatNumber(quantity.Value()), match[2], nil
	}

	registered, err := units.ParseUnit(unit)
	if err != nil {
		return "", unit, errors.New(UnitIncompatibilityError{Item: item.Name(), Value: raw, Unit: match[2], Registered: unit, Err: err})
	}

	converted, err := quantity.ConvertTo(registered)
	if err != nil {
		return "", unit, errors.New(UnitIncompatibilityError{Item: item.Name(), Value: raw, Unit: match[2], Registered: unit, Err: err})
	}

	item.logger.Debugf("Converted %s to %v %s", raw, converted.Value(), unit)

	return formatNumber(converted.Value()), unit, nil
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (item *DataItem) coerce(raw string) (any, error) {
	attrs := item.attrs

	switch attrs.Coercion {
	case CoerceString:
		return raw, nil
	case CoerceFunc:
		value, err := attrs.Convert(raw)
		if err != nil {
			return nil, errors.New(TypeCoercionError{Item: attrs.Name, Value: raw, Coercion: attrs.Coercion, Err: err})
		}

		return value, nil
	case CoerceBool:
		value, err := StrToBool(raw)
		if err != nil {
			return nil, errors.New(TypeCoercionError{Item: attrs.Name, Value: raw, Coercion: attrs.Coercion, Err: err})
		}

		return value, nil
	case CoerceExpression:
		value, err := expr.Evaluate(raw, attrs.Namespace)
		if err != nil {
			return raw, nil
		}

		return value, nil
	}

	if expr.LooksLikeExpression(raw, attrs.Namespace) {
		if value, err := expr.Evaluate(raw, attrs.Namespace); err == nil {
			return item.toNumber(raw, value)
		}
	}

	if attrs.Coercion == CoerceFloat {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New(TypeCoercionError{Item: attrs.Name, Value: raw, Coercion: attrs.Coercion, Err: err})
		}

		return value, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New(TypeCoercionError{Item: attrs.Name, Value: raw, Coercion: attrs.Coercion, Err: err, Hint: item.intHint(raw)})
	}

	return value, nil
}

// intHint explains the common mistake of declaring a real parameter with an integer default.
func (item *DataItem) intHint(raw string) string {
	if _, err := strconv.ParseFloat(raw, 64); err != nil || coercionOf(item.attrs.Default) != CoerceInt {
		return ""
	}

	return fmt.Sprintf("str2type is int but should have been float, either specify str2type=float or set the default value to %v.0, not just %v", item.attrs.Default, item.attrs.Default)
}

// toNumber converts the result of an expression to the item's numeric type.
func (item *DataItem) toNumber(raw string, value any) (any, error) {
	coercion := item.attrs.Coercion

	switch number := value.(type) {
	case int:
		if coercion == CoerceFloat {
			return float64(number), nil
		}

		return number, nil
	case float64:
		if coercion == CoerceFloat {
			return number, nil
		}

		if number == math.Trunc(number) && !math.IsInf(number, 0) {
			return int(number), nil
		}

		return nil, errors.New(TypeCoercionError{Item: item.Name(), Value: raw, Coercion: coercion, Err: errors.Errorf("%v is not an integer", number), Hint: item.intHint(raw)})
	}

	return nil, errors.New(TypeCoercionError{Item: item.Name(), Value: raw, Coercion: coercion, Err: errors.Errorf("expression gives %T, not a number", value)})
}

func (item *DataItem) validate(value any) error {
	attrs := item.attrs

	if attrs.Validate != nil {
		valid, err := attrs.Validate(item, value)
		if err != nil {
			return errors.New(err)
		}

		if !valid {
			return errors.New(ValidationError{Item: attrs.Name, Value: value})
		}

		return nil
	}

	if attrs.MinMax != nil {
		number, ok := toFloat(value)
		if !ok || number < attrs.MinMax[0] || number > attrs.MinMax[1] {
			return errors.New(RangeError{Item: attrs.Name, Value: value, Min: attrs.MinMax[0], Max: attrs.MinMax[1]})
		}
	}

	if attrs.Options != nil && !slices.ContainsFunc(attrs.Options, func(option any) bool { return equalValues(option, value) }) {
		return errors.New(OptionError{Item: attrs.Name, Value: value, Options: attrs.Options})
	}

	return nil
}

func toFloat(value any) (float64, bool) {
	val := reflect.ValueOf(value)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(val.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(val.Uint()), true
	case reflect.Float32, reflect.Float64:
		return val.Float(), true
	}

	return 0, false
}

// equalValues compares numbers by value, so option 2 matches 2.0.
func equalValues(a, b any) bool {
	x, aNumber := toFloat(a)
	y, bNumber := toFloat(b)

	if aNumber && bNumber {
		return x == y
	}

	return reflect.DeepEqual(a, b)
}

// Values returns a copy of the current values, or the default when nothing was assigned.
func (item *DataItem) Values() []any {
	if !item.assigned {
		return []any{clone.Clone(item.attrs.Default)}
	}

	return clone.Clone(item.values).([]any)
}

// Value returns the first current value.
func (item *DataItem) Value() any {
	return item.Values()[0]
}

// ValueWithUnit returns "value unit", formatting the value with format when given, e.g. "%5.2f".
func (item *DataItem) ValueWithUnit(format string) string {
	if format == "" {
		format = "%v"
	}

	str := fmt.Sprintf(format, item.Value())

	if item.attrs.Unit == "" {
		return str
	}

	return str + " " + item.attrs.Unit
}

// Quantity returns the first value as a units.Quantity in the registered unit.
func (item *DataItem) Quantity() (units.Quantity, error) {
	if item.attrs.Unit == "" {
		return units.Quantity{}, errors.New(NoUnitError{Item: item.Name()})
	}

	unit, err := units.ParseUnit(item.attrs.Unit)
	if err != nil {
		return units.Quantity{}, err
	}

	number, ok := toFloat(item.Value())
	if !ok {
		return units.Quantity{}, errors.Errorf("value %v of %q is not a number", item.Value(), item.Name())
	}

	return units.NewQuantity(number, unit), nil
}

func (item *DataItem) HasMultipleValues() bool {
	return len(item.Values()) > 1
}

// Assigned returns true once a value was set, SetDefault does not count.
func (item *DataItem) Assigned() bool {
	return item.assigned
}

func (item *DataItem) Default() any {
	return item.attrs.Default
}

// Unit returns the registered unit, empty when none.
func (item *DataItem) Unit() string {
	return item.attrs.Unit
}

func (item *DataItem) Help() string {
	return item.attrs.Help
}

func (item *DataItem) Widget() Widget {
	return item.attrs.Widget
}

func (item *DataItem) Coercion() Coercion {
	return item.attrs.Coercion
}

func (item *DataItem) Symbol() string {
	return item.attrs.Symbol
}

func (item *DataItem) UserData() any {
	return item.attrs.UserData
}

func (item *DataItem) Options() []any {
	return slices.Clone(item.attrs.Options)
}

// MinMax returns the declared interval and false when the item has none.
func (item *DataItem) MinMax() ([]float64, bool) {
	return slices.Clone(item.attrs.MinMax), item.attrs.MinMax != nil
}

// MinMaxOrDefault returns the declared interval or the default one.
func (item *DataItem) MinMaxOrDefault() []float64 {
	if item.attrs.MinMax != nil {
		return slices.Clone(item.attrs.MinMax)
	}

	return slices.Clone(item.defaults.MinMax)
}

func (item *DataItem) WidgetSize() int {
	if item.attrs.WidgetSize > 0 {
		return item.attrs.WidgetSize
	}

	return item.defaults.WidgetSize
}

// RangeStep returns the slider increment, the width of the interval divided by the number of steps.
func (item *DataItem) RangeStep() float64 {
	steps := item.attrs.RangeSteps
	if steps == 0 {
		steps = item.defaults.RangeSteps
	}

	minMax := item.MinMaxOrDefault()

	return (minMax[1] - minMax[0]) / float64(steps)
}

func (item *DataItem) NumberStep() float64 {
	if item.attrs.NumberStep > 0 {
		return item.attrs.NumberStep
	}

	return item.defaults.NumberStep
}

// Attributes returns a copy of the resolved attributes.
func (item *DataItem) Attributes() Attributes {
	return item.attrs
}

// Attribute returns the attribute stored under its map name, e.g. "help" or "minmax".
func (item *DataItem) Attribute(name string) (any, error) {
	for _, field := range attributeFields(item.attrs) {
		if field.Tag(attributeTag) != name {
			continue
		}

		if field.IsZero() {
			break
		}

		return field.Value(), nil
	}

	return nil, errors.New(InvalidAttributeError{Item: item.Name(), Attribute: name, Reason: "is not set, registered attributes are " + formatAttributes(item.attrs)})
}

// SetAttribute changes one descriptive attribute by its map name.
func (item *DataItem) SetAttribute(name string, value any) error {
	switch name {
	case "name", "default", "value", "str2type", "unit":
		return errors.New(InvalidAttributeError{Item: item.Name(), Attribute: name, Reason: "cannot be changed after declaration"})
	}

	var update Attributes

	if err := decodeAttributes(map[string]any{name: value}, &update); err != nil {
		return errors.New(InvalidAttributeError{Item: item.Name(), Attribute: name, Reason: err.Error()})
	}

	attrs := item.attrs
	target := reflect.ValueOf(&attrs).Elem()

	for i := range target.NumField() {
		if target.Type().Field(i).Tag.Get(attributeTag) == name {
			target.Field(i).Set(reflect.ValueOf(update).Field(i))
		}
	}

	if err := attrs.check(); err != nil {
		return err
	}

	item.attrs = attrs

	return nil
}

// String returns `DataItem "Q": value=1.2 default=1.2, help=volume flux, ...`.
func (item *DataItem) String() string {
	str := fmt.Sprintf("%s %q:", item.Kind(), item.Name())

	if item.HasMultipleValues() {
		str += fmt.Sprintf(" multiple values: %v", item.Values())
	} else {
		str += fmt.Sprintf(" value=%v", item.Value())
	}

	return str + " " + formatAttributes(item.attrs)
}
