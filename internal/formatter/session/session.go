/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package session

import (
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/services"
)

const (
	defaultSessionListing = "table {{.ID}}\t{{.User}}\t{{.AppContext}}"

	idHeader      = "ID"
	userHeader    = "User"
	contextHeader = "Context"
)

// Context for session outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	s services.Session
}

// NewSessionFormat for formatting output
func NewSessionFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultSessionListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of sessions
func Write(ctx formatter.Context, sessions []services.Session) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(sessions, "", "  ")
		} else {
			output, err = json.Marshal(sessions)
		}

		if err != nil {
			logrus.Errorf("Error marshaling sessions to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, session := range sessions {
			err := format(&Context{s: session})
			if err != nil {
				logrus.Debugf("Error rendering session: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewSessionContext(), render)
}

// NewSessionContext creates a new context for rendering sessions
func NewSessionContext() *Context {
	sessionCtx := Context{}
	sessionCtx.Header = formatter.SubHeaderContext{
		"ID":         idHeader,
		"User":       userHeader,
		"AppContext": contextHeader,
	}
	return &sessionCtx
}

// ID fetches the session identifier
func (c *Context) ID() string {
	return strconv.Itoa(c.s.ID)
}

// User fetches the user owning the session
func (c *Context) User() string {
	return c.s.UserName
}

// AppContext fetches the application context of the session
func (c *Context) AppContext() string {
	return c.s.Context
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.s)
}
