/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// Cube mirrors a server-side cube: a name, an ordered list of dimensions and
// optional rules
type Cube struct {
	Name       string
	Dimensions []string
	Rules      *Rules
}

// NewCube creates a cube with the given dimensions and optional rules text
func NewCube(name string, dimensions []string, rules string) *Cube {
	cube := &Cube{Name: name, Dimensions: dimensions}
	if rules != "" {
		cube.Rules = NewRules(rules)
	}
	return cube
}

// HasRules reports whether the cube carries a rules definition
func (c *Cube) HasRules() bool {
	return c.Rules != nil
}

// SkipcheckActive reports whether the rules open with SKIPCHECK
func (c *Cube) SkipcheckActive() bool {
	return c.HasRules() && c.Rules.Skipcheck()
}

// UndefValsActive reports whether the rules declare UNDEFVALS
func (c *Cube) UndefValsActive() bool {
	return c.HasRules() && c.Rules.UndefVals()
}

// FeedStringsActive reports whether the rules declare FEEDSTRINGS
func (c *Cube) FeedStringsActive() bool {
	return c.HasRules() && c.Rules.FeedStrings()
}

// Body builds the creation body with dimension references
func (c *Cube) Body() (string, error) {
	body := make(map[string]interface{})
	body["Name"] = c.Name
	bindings := make([]string, 0, len(c.Dimensions))
	for _, dimension := range c.Dimensions {
		bindings = append(bindings, rest.FormatURL("Dimensions('%s')", dimension))
	}
	body["Dimensions@odata.bind"] = bindings
	if c.Rules != nil {
		body["Rules"] = c.Rules.Text
	}
	data, err := json.Marshal(body)
	return string(data), err
}

// CubeFromJSON parses the server representation of a cube
func CubeFromJSON(data []byte) (*Cube, error) {
	var raw struct {
		Name       string `json:"Name"`
		Rules      string `json:"Rules"`
		Dimensions []struct {
			Name string `json:"Name"`
		} `json:"Dimensions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	dimensions := make([]string, 0, len(raw.Dimensions))
	for _, dimension := range raw.Dimensions {
		dimensions = append(dimensions, dimension.Name)
	}
	return NewCube(raw.Name, dimensions, raw.Rules), nil
}
