// Package render writes a pool as HCL or JSON for consumption by other tools.
package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/gruntwork-io/parampool/internal/ctyhelper"
	"github.com/gruntwork-io/parampool/internal/errors"
	"github.com/gruntwork-io/parampool/pkg/pool"
	"github.com/gruntwork-io/parampool/pkg/tree"
)

const (
	BlockGroup     = "group"
	BlockParameter = "parameter"
)

// HCL writes every group as a `group "<name>"` block and every item as a
// `parameter "<name>"` block with its value, unit and help.
func HCL(writer io.Writer, p *pool.Pool) error {
	file := hclwrite.NewEmptyFile()
	bodies := []*hclwrite.Body{file.Body()}

	for event := range p.Walk() {
		body := bodies[len(bodies)-1]

		switch event.Kind {
		case tree.EnterGroup:
			block := body.AppendNewBlock(BlockGroup, []string{event.Item.Name()})
			bodies = append(bodies, block.Body())
		case tree.ExitGroup:
			bodies = bodies[:len(bodies)-1]
		case tree.LeafEvent:
			item, ok := event.Item.(*pool.DataItem)
			if !ok {
				continue
			}

			if err := writeParameter(body.AppendNewBlock(BlockParameter, []string{item.Name()}).Body(), item); err != nil {
				return err
			}
		}
	}

	if _, err := writer.Write(hclwrite.Format(file.Bytes())); err != nil {
		return errors.New(err)
	}

	return nil
}

func writeParameter(body *hclwrite.Body, item *pool.DataItem) error {
	if item.HasMultipleValues() {
		values, err := ctyhelper.FromGoValue(item.Values())
		if err != nil {
			return errors.WithStackTraceAndPrefix(err, "parameter %s", item.Name())
		}

		body.SetAttributeValue("values", values)
	} else if item.Value() != nil {
		value, err := ctyhelper.FromGoValue(item.Value())
		if err != nil {
			return errors.WithStackTraceAndPrefix(err, "parameter %s", item.Name())
		}

		body.SetAttributeValue("value", value)
	}

	if unit := item.Unit(); unit != "" {
		body.SetAttributeValue("unit", cty.StringVal(unit))
	}

	if help := item.Help(); help != "" {
		body.SetAttributeValue("help", cty.StringVal(help))
	}

	return nil
}

// JSON writes the pool as nested objects keyed by group and item names. An item maps to
// its value, or to the list of its values when it has several.
func JSON(writer io.Writer, p *pool.Pool) error {
	value, err := groupValue(p.Root())
	if err != nil {
		return err
	}

	rawJSON, err := ctyjson.Marshal(value, value.Type())
	if err != nil {
		return errors.New(err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, rawJSON, "", "  "); err != nil {
		return errors.New(err)
	}

	pretty.WriteByte('\n')

	if _, err := writer.Write(pretty.Bytes()); err != nil {
		return errors.New(err)
	}

	return nil
}

func groupValue(subtree *tree.SubTree) (cty.Value, error) {
	attrs := make(map[string]cty.Value, subtree.Len())

	for _, child := range subtree.Items() {
		var (
			value cty.Value
			err   error
		)

		switch child := child.(type) {
		case *tree.SubTree:
			value, err = groupValue(child)
		case *pool.DataItem:
			value, err = itemValue(child)
		default:
			continue
		}

		if err != nil {
			return cty.NilVal, err
		}

		attrs[child.Name()] = value
	}

	return cty.ObjectVal(attrs), nil
}

func itemValue(item *pool.DataItem) (cty.Value, error) {
	var raw any = item.Value()
	if item.HasMultipleValues() {
		raw = item.Values()
	}

	// a dynamic null would be written with its type information
	if raw == nil {
		return cty.NullVal(cty.String), nil
	}

	value, err := ctyhelper.FromGoValue(raw)
	if err != nil {
		return cty.NilVal, errors.WithStackTraceAndPrefix(err, "parameter %s", item.Name())
	}

	return value, nil
}
