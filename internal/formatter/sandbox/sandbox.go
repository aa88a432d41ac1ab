/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package sandbox

import (
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

const (
	defaultSandboxListing = "table {{.Name}}\t{{.Active}}\t{{.Loaded}}\t{{.Queued}}\t{{.InSandboxDimension}}"

	loadedHeader             = "Loaded"
	queuedHeader             = "Queued"
	inSandboxDimensionHeader = "In Sandbox Dimension"
)

// Context for sandbox outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	s *objects.Sandbox
}

// NewSandboxFormat for formatting output
func NewSandboxFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultSandboxListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of sandboxes
func Write(ctx formatter.Context, sandboxes []*objects.Sandbox) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(sandboxes, "", "  ")
		} else {
			output, err = json.Marshal(sandboxes)
		}

		if err != nil {
			logrus.Errorf("Error marshaling sandboxes to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, sandbox := range sandboxes {
			err := format(&Context{s: sandbox})
			if err != nil {
				logrus.Debugf("Error rendering sandbox: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewSandboxContext(), render)
}

// NewSandboxContext creates a new context for rendering sandboxes
func NewSandboxContext() *Context {
	sandboxCtx := Context{}
	sandboxCtx.Header = formatter.SubHeaderContext{
		"Name":               formatter.NameHeader,
		"Active":             formatter.ActiveHeader,
		"Loaded":             loadedHeader,
		"Queued":             queuedHeader,
		"InSandboxDimension": inSandboxDimensionHeader,
	}
	return &sandboxCtx
}

// Name fetches the sandbox name
func (c *Context) Name() string {
	return c.s.Name
}

// Active fetches whether the sandbox is active in the session
func (c *Context) Active() string {
	return strconv.FormatBool(c.s.IsActive)
}

// Loaded fetches the loaded state
func (c *Context) Loaded() string {
	return strconv.FormatBool(c.s.IsLoaded)
}

// Queued fetches the queued state
func (c *Context) Queued() string {
	return strconv.FormatBool(c.s.IsQueued)
}

// InSandboxDimension fetches whether the sandbox shows up in the sandbox
// dimension
func (c *Context) InSandboxDimension() string {
	return strconv.FormatBool(c.s.IncludeInSandboxDimension)
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.s)
}
