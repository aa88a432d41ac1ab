/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package user

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

const (
	defaultUserListing = "table {{.Name}}\t{{.FriendlyName}}\t{{.Type}}\t{{.Enabled}}\t{{.Groups}}"

	friendlyNameHeader = "Friendly Name"
	enabledHeader      = "Enabled"
)

// Context for user outputs
type Context struct {
	formatter.HeaderContext
	formatter.Context
	u *objects.User
}

// NewUserFormat for formatting output
func NewUserFormat(source string) formatter.Format {
	switch source {
	case formatter.TableFormatKey, "":
		format := defaultUserListing
		return formatter.Format(format)
	default: // custom format or json or pretty
		return formatter.Format(source)
	}
}

// Write renders the context for a list of users
func Write(ctx formatter.Context, users []*objects.User) error {
	// Check if the format is JSON or Pretty JSON
	if (ctx.Format.IsJSON() || ctx.Format.IsPrettyJSON()) && ctx.Command.IsListCommand() {
		var output []byte
		var err error

		if ctx.Format.IsPrettyJSON() {
			output, err = json.MarshalIndent(users, "", "  ")
		} else {
			output, err = json.Marshal(users)
		}

		if err != nil {
			logrus.Errorf("Error marshaling users to json: %v\n", err)
			return err
		}

		_, err = ctx.Output.Write(output)
		return err
	}
	render := func(format func(subContext formatter.SubContext) error) error {
		for _, user := range users {
			err := format(&Context{u: user})
			if err != nil {
				logrus.Debugf("Error rendering user: %v", err)
				return err
			}
		}
		return nil
	}
	return ctx.Write(NewUserContext(), render)
}

// NewUserContext creates a new context for rendering users
func NewUserContext() *Context {
	userCtx := Context{}
	userCtx.Header = formatter.SubHeaderContext{
		"Name":         formatter.NameHeader,
		"FriendlyName": friendlyNameHeader,
		"Type":         formatter.TypeHeader,
		"Enabled":      enabledHeader,
		"Groups":       formatter.GroupsHeader,
	}
	return &userCtx
}

// Name fetches the user name
func (c *Context) Name() string {
	return c.u.Name
}

// FriendlyName fetches the display name
func (c *Context) FriendlyName() string {
	return c.u.FriendlyName
}

// Type fetches the privilege class
func (c *Context) Type() string {
	return c.u.Type.String()
}

// Enabled fetches the enabled state
func (c *Context) Enabled() string {
	return strconv.FormatBool(c.u.Enabled)
}

// Groups fetches the group memberships
func (c *Context) Groups() string {
	return strings.Join(c.u.Groups(), ", ")
}

// MarshalJSON function
func (c *Context) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.u)
}
