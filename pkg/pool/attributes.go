package pool

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"

	"github.com/gruntwork-io/parampool/internal/errors"
)

// attributeTag names the struct tag holding the attribute names used in maps and pool files.
const attributeTag = "mapstructure"

// ConvertFunc turns a raw string into a value. It replaces the built-in strategies.
type ConvertFunc func(raw string) (any, error)

// ValidateFunc checks a coerced value. Returning false rejects the value with a
// ValidationError, returning an error rejects it with that error.
type ValidateFunc func(item *DataItem, value any) (bool, error)

// Attributes describe a data item. Only Name is required.
type Attributes struct {
	Default    any            `mapstructure:"default"`
	Value      any            `mapstructure:"value"`
	UserData   any            `mapstructure:"user_data"`
	Namespace  map[string]any `mapstructure:"namespace"`
	Convert    ConvertFunc    `mapstructure:"-"`
	Validate   ValidateFunc   `mapstructure:"validate"`
	Name       string         `mapstructure:"name"`
	Unit       string         `mapstructure:"unit"`
	Help       string         `mapstructure:"help"`
	Widget     Widget         `mapstructure:"widget"`
	Symbol     string         `mapstructure:"symbol"`
	MinMax     []float64      `mapstructure:"minmax"`
	Options    []any          `mapstructure:"options"`
	Coercion   Coercion       `mapstructure:"str2type"`
	WidgetSize int            `mapstructure:"widget_size"`
	RangeSteps int            `mapstructure:"range_steps"`
	NumberStep float64        `mapstructure:"number_step"`
}

// AttributeNames returns the names accepted by DecodeAttributes, in declaration order.
func AttributeNames() []string {
	var names []string

	for _, field := range attributeFields(Attributes{}) {
		names = append(names, field.Tag(attributeTag))
	}

	return names
}

func attributeFields(attrs Attributes) []*structs.Field {
	s := structs.New(attrs)
	s.TagName = attributeTag

	var fields []*structs.Field

	for _, field := range s.Fields() {
		if tag := field.Tag(attributeTag); tag != "" && tag != "-" {
			fields = append(fields, field)
		}
	}

	return fields
}

// DecodeAttributes builds Attributes from a map keyed by attribute name. Unknown keys are
// rejected. "str2type" takes a strategy name or a func(string) (any, error).
func DecodeAttributes(input map[string]any) (Attributes, error) {
	var attrs Attributes

	input = maps.Clone(input)

	name, _ := input["name"].(string)

	switch convert := input["str2type"].(type) {
	case func(string) (any, error):
		attrs.Convert = convert
		delete(input, "str2type")
	case ConvertFunc:
		attrs.Convert = convert
		delete(input, "str2type")
	}

	if validate, ok := input["validate"].(func(*DataItem, any) (bool, error)); ok {
		input["validate"] = ValidateFunc(validate)
	}

	if err := decodeAttributes(input, &attrs); err != nil {
		return attrs, errors.New(InvalidAttributeError{Item: name, Reason: err.Error() + "; valid attributes are " + strings.Join(AttributeNames(), ", ")})
	}

	return attrs, nil
}

func decodeAttributes(input map[string]any, attrs *Attributes) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.TextUnmarshallerHookFunc(),
		ErrorUnused: true,
		TagName:     attributeTag,
		Result:      attrs,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

// check validates the attributes after strategy and widget were resolved.
func (attrs *Attributes) check() error {
	if attrs.Name == "" {
		return errors.New(InvalidAttributeError{Attribute: "name", Reason: "must be given"})
	}

	if attrs.MinMax != nil {
		if len(attrs.MinMax) != 2 {
			return errors.New(InvalidAttributeError{Item: attrs.Name, Attribute: "minmax", Reason: fmt.Sprintf("must have length 2, not %d", len(attrs.MinMax))})
		}

		if attrs.MinMax[0] > attrs.MinMax[1] {
			return errors.New(InvalidAttributeError{Item: attrs.Name, Attribute: "minmax", Reason: fmt.Sprintf("has min %v greater than max %v", attrs.MinMax[0], attrs.MinMax[1])})
		}
	}

	if attrs.Widget != "" && !attrs.Widget.IsValid() {
		return errors.New(InvalidAttributeError{Item: attrs.Name, Attribute: "widget", Reason: fmt.Sprintf("%s is not allowed, select one of %v", attrs.Widget, Widgets)})
	}

	if !attrs.Coercion.IsValid() {
		return errors.New(InvalidAttributeError{Item: attrs.Name, Attribute: "str2type", Reason: fmt.Sprintf("%d is not a known strategy", attrs.Coercion)})
	}

	if attrs.WidgetSize < 0 || attrs.RangeSteps < 0 || attrs.NumberStep < 0 {
		return errors.New(InvalidAttributeError{Item: attrs.Name, Reason: "widget_size, range_steps and number_step must not be negative"})
	}

	return nil
}

// formatAttributes returns "default=1.2, help=volume flux, minmax=[0 2]" for every set
// attribute but name, sorted by attribute name.
func formatAttributes(attrs Attributes) string {
	fields := attributeFields(attrs)

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Tag(attributeTag) < fields[j].Tag(attributeTag)
	})

	var strs []string

	for _, field := range fields {
		name := field.Tag(attributeTag)
		if name == "name" || field.IsZero() {
			continue
		}

		strs = append(strs, name+"="+formatAttribute(field.Value()))
	}

	return strings.Join(strs, ", ")
}

func formatAttribute(value any) string {
	if reflect.ValueOf(value).Kind() == reflect.Func {
		return "func"
	}

	if m, ok := value.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		return "{" + strings.Join(keys, ", ") + "}"
	}

	return fmt.Sprintf("%v", value)
}
