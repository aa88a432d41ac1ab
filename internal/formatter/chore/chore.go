/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package chore

import (
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

const (
	defaultChoreListing = "table {{.Name}}\t{{.Active}}\t{{.StartTime}}\t{{.Frequency}}\t{{.ExecutionMode}}\t{{.Tasks}}"

	startTimeHeader     = "Start Time"
	frequencyHeader     = "Frequency"
	executionModeHeader = "Execution Mode"
	tasksHeader         = "Tasks"
)

// Context for chore outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	c *objects.Chore
}

// NewChoreFormat for formatting output
func NewChoreFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultChoreListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of chores
func Write(ctx formatter.Context, chores []*objects.Chore) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(chores, "", "  ")
		} else {
			output, err = json.Marshal(chores)
		}

		if err != nil {
			logrus.Errorf("Error marshaling chores to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, chore := range chores {
			err := format(&Context{c: chore})
			if err != nil {
				logrus.Debugf("Error rendering chore: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewChoreContext(), render)
}

// NewChoreContext creates a new context for rendering chores
func NewChoreContext() *Context {
	choreCtx := Context{}
	choreCtx.Header = formatter.SubHeaderContext{
		"Name":          formatter.NameHeader,
		"Active":        formatter.ActiveHeader,
		"StartTime":     startTimeHeader,
		"Frequency":     frequencyHeader,
		"ExecutionMode": executionModeHeader,
		"Tasks":         tasksHeader,
	}
	return &choreCtx
}

// Name fetches the chore name
func (c *Context) Name() string {
	return c.c.Name
}

// Active fetches the activation state
func (c *Context) Active() string {
	return strconv.FormatBool(c.c.Active)
}

// StartTime fetches the scheduled first run
func (c *Context) StartTime() string {
	return c.c.StartTime.String()
}

// Frequency fetches the execution interval
func (c *Context) Frequency() string {
	return c.c.Frequency.String()
}

// ExecutionMode fetches the commit mode
func (c *Context) ExecutionMode() string {
	return c.c.ExecutionMode
}

// Tasks fetches the number of steps
func (c *Context) Tasks() string {
	return strconv.Itoa(len(c.c.Tasks))
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.c)
}
