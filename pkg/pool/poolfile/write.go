package poolfile

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/tree"
)

const indentation = "    "

// Write returns the pool in the pool file format.
func Write(p *pool.Pool) string {
	var lines []string

	pool.Traverse(p, tree.Visitor[*[]string]{
		Leaf: func(_ []string, level int, leaf tree.Item, lines *[]string) {
			item, ok := leaf.(*pool.DataItem)
			if !ok {
				return
			}

			*lines = append(*lines, strings.Repeat(indentation, level)+itemLine(item, p.Defaults().Separator))
		},
		SubtreeStart: func(_ []string, level int, subtree *tree.SubTree, lines *[]string) {
			*lines = append(*lines, strings.Repeat(indentation, level)+KeywordGroup+" "+subtree.Name())
		},
		SubtreeEnd: func(_ []string, level int, _ *tree.SubTree, lines *[]string) {
			*lines = append(*lines, strings.Repeat(indentation, level)+KeywordEnd, "")
		},
	}, &lines)

	return strings.Join(lines, "\n") + "\n"
}

// WriteFile writes the pool to filename.
func WriteFile(p *pool.Pool, filename string) error {
	if err := os.WriteFile(filename, []byte(Write(p)), 0o644); err != nil {
		return errors.WithStackTrace(err)
	}

	p.Logger().Debugf("Wrote pool file %s", filename)

	return nil
}

func itemLine(item *pool.DataItem, separator string) string {
	line := item.Name()

	if item.Value() != nil {
		values := make([]string, 0, len(item.Values()))
		for _, value := range item.Values() {
			values = append(values, FormatValue(value))
		}

		line += " " + DelimValue + " " + strings.Join(values, " "+separator+" ")
	}

	if unit := item.Unit(); unit != "" {
		line += "   " + DelimUnit + " " + unit
	}

	help := item.Help()
	widget := item.Widget()

	switch {
	case widget != pool.WidgetTextline && help != "":
		line += "   " + DelimHelp + " " + help + " " + widgetKey + string(widget)
	case widget != pool.WidgetTextline:
		line += "   " + DelimHelp + " " + widgetKey + string(widget)
	case help != "":
		line += "   " + DelimHelp + " " + help
	}

	return line
}

// FormatValue writes a value so that reading it back infers the same type: floats always
// carry a decimal point or an exponent, lists and maps use expression syntax.
func FormatValue(value any) string {
	return formatValue(value, false)
}

func formatValue(value any, quote bool) string {
	switch val := value.(type) {
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case string:
		if quote {
			return strconv.Quote(val)
		}

		return val
	case []any:
		elems := make([]string, 0, len(val))
		for _, elem := range val {
			elems = append(elems, formatValue(elem, true))
		}

		return "[" + strings.Join(elems, ", ") + "]"
	case map[string]any:
		elems := make([]string, 0, len(val))
		for _, key := range slices.Sorted(maps.Keys(val)) {
			elems = append(elems, strconv.Quote(key)+": "+formatValue(val[key], true))
		}

		return "{" + strings.Join(elems, ", ") + "}"
	}

	return fmt.Sprintf("%v", value)
}

func formatFloat(value float64) string {
	str := strconv.FormatFloat(value, 'g', -1, 64)
	if strings.ContainsAny(str, ".eIN") {
		return str
	}

	return str + ".0"
}
