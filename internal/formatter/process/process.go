/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

const (
	defaultProcessListing = "table {{.Name}}\t{{.DataSourceType}}\t{{.Parameters}}\t{{.HasSecurityAccess}}"

	dataSourceTypeHeader    = "Data Source Type"
	parametersHeader        = "Parameters"
	hasSecurityAccessHeader = "Has Security Access"
)

// Context for process outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	p *objects.Process
}

// NewProcessFormat for formatting output
func NewProcessFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultProcessListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of processes
func Write(ctx formatter.Context, processes []*objects.Process) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(processes, "", "  ")
		} else {
			output, err = json.Marshal(processes)
		}

		if err != nil {
			logrus.Errorf("Error marshaling processes to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, process := range processes {
			err := format(&Context{p: process})
			if err != nil {
				logrus.Debugf("Error rendering process: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewProcessContext(), render)
}

// NewProcessContext creates a new context for rendering processes
func NewProcessContext() *Context {
	processCtx := Context{}
	processCtx.Header = formatter.SubHeaderContext{
		"Name":              formatter.NameHeader,
		"DataSourceType":    dataSourceTypeHeader,
		"Parameters":        parametersHeader,
		"HasSecurityAccess": hasSecurityAccessHeader,
	}
	return &processCtx
}

// Name fetches the process name
func (c *Context) Name() string {
	return c.p.Name
}

// DataSourceType fetches the data source type of the process
func (c *Context) DataSourceType() string {
	return c.p.DataSource.Type
}

// Parameters fetches the number of parameters of the process
func (c *Context) Parameters() string {
	return strconv.Itoa(len(c.p.Parameters))
}

// HasSecurityAccess fetches the security access flag
func (c *Context) HasSecurityAccess() string {
	return strconv.FormatBool(c.p.HasSecurityAccess)
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.p)
}
