/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package dimension

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

const (
	defaultDimensionListing = "table {{.Name}}\t{{.Hierarchies}}\t{{.HierarchyCount}}"

	hierarchiesHeader    = "Hierarchies"
	hierarchyCountHeader = "Hierarchy Count"
)

// Context for dimension outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	d *objects.Dimension
}

// NewDimensionFormat for formatting output
func NewDimensionFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultDimensionListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of dimensions
func Write(ctx formatter.Context, dimensions []*objects.Dimension) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(dimensions, "", "  ")
		} else {
			output, err = json.Marshal(dimensions)
		}

		if err != nil {
			logrus.Errorf("Error marshaling dimensions to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, dimension := range dimensions {
			err := format(&Context{d: dimension})
			if err != nil {
				logrus.Debugf("Error rendering dimension: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewDimensionContext(), render)
}

// NewDimensionContext creates a new context for rendering dimensions
func NewDimensionContext() *Context {
	dimensionCtx := Context{}
	dimensionCtx.Header = formatter.SubHeaderContext{
		"Name":           formatter.NameHeader,
		"Hierarchies":    hierarchiesHeader,
		"HierarchyCount": hierarchyCountHeader,
	}
	return &dimensionCtx
}

// Name fetches the dimension name
func (c *Context) Name() string {
	return c.d.Name
}

// Hierarchies fetches the hierarchy names of the dimension
func (c *Context) Hierarchies() string {
	names := make([]string, 0, len(c.d.Hierarchies))
	for _, hierarchy := range c.d.Hierarchies {
		names = append(names, hierarchy.Name)
	}
	return strings.Join(names, ", ")
}

// HierarchyCount fetches the number of hierarchies
func (c *Context) HierarchyCount() string {
	return strconv.Itoa(len(c.d.Hierarchies))
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.d)
}
