/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

const (
	defaultCubeListing = "table {{.Name}}\t{{.Dimensions}}\t{{.HasRules}}"

	hasRulesHeader = "Has Rules"
)

// Context for cube outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	c *objects.Cube
}

// NewCubeFormat for formatting output
func NewCubeFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultCubeListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of cubes
func Write(ctx formatter.Context, cubes []*objects.Cube) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		// Marshal the slice of cubes into JSON
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(cubes, "", "  ")
		} else {
			output, err = json.Marshal(cubes)
		}

		if err != nil {
			logrus.Errorf("Error marshaling cubes to json: %v\n", err)
			return err
		}

		// Write the JSON output to the context
		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, cube := range cubes {
			err := format(&Context{c: cube})
			if err != nil {
				logrus.Debugf("Error rendering cube: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewCubeContext(), render)
}

// NewCubeContext creates a new context for rendering cubes
func NewCubeContext() *Context {
	cubeCtx := Context{}
	cubeCtx.Header = formatter.SubHeaderContext{
		"Name":       formatter.NameHeader,
		"Dimensions": formatter.DimensionsHeader,
		"HasRules":   hasRulesHeader,
	}
	return &cubeCtx
}

// Name fetches the cube name
func (c *Context) Name() string {
	return c.c.Name
}

// Dimensions fetches the dimension names in cube order
func (c *Context) Dimensions() string {
	return strings.Join(c.c.Dimensions, ", ")
}

// HasRules fetches whether the cube carries rules
func (c *Context) HasRules() string {
	if c.c.HasRules() {
		return "true"
	}
	return "false"
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.c)
}
