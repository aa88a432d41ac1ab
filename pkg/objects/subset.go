/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// Subset mirrors a named subset on a hierarchy. A non-empty Expression makes
// the subset dynamic; otherwise the element list defines a static subset.
type Subset struct {
	Name          string
	DimensionName string
	HierarchyName string
	Alias         string
	Expression    string
	Elements      []string
}

// NewSubset creates a static or dynamic subset depending on expression
func NewSubset(name, dimensionName, hierarchyName, expression string, elements []string) *Subset {
	if hierarchyName == "" {
		hierarchyName = dimensionName
	}
	return &Subset{
		Name:          name,
		DimensionName: dimensionName,
		HierarchyName: hierarchyName,
		Expression:    expression,
		Elements:      elements,
	}
}

// IsDynamic reports whether the subset is driven by an MDX expression
func (s *Subset) IsDynamic() bool {
	return s.Expression != ""
}

// IsStatic reports whether the subset is a fixed element list
func (s *Subset) IsStatic() bool {
	return !s.IsDynamic()
}

// AddElements appends elements to a static subset definition
func (s *Subset) AddElements(elements ...string) {
	s.Elements = append(s.Elements, elements...)
}

func (s *Subset) bodyAsMap() map[string]interface{} {
	body := make(map[string]interface{})
	body["Name"] = s.Name
	if s.Alias != "" {
		body["Alias"] = s.Alias
	}
	body["Hierarchy@odata.bind"] = rest.FormatURL(
		"Dimensions('%s')/Hierarchies('%s')", s.DimensionName, s.HierarchyName)
	if s.IsDynamic() {
		body["Expression"] = s.Expression
	} else {
		bindings := make([]string, 0, len(s.Elements))
		for _, element := range s.Elements {
			bindings = append(bindings, rest.FormatURL(
				"Dimensions('%s')/Hierarchies('%s')/Elements('%s')",
				s.DimensionName, s.HierarchyName, element))
		}
		body["Elements@odata.bind"] = bindings
	}
	return body
}

// Body builds the creation body of the subset
func (s *Subset) Body() (string, error) {
	data, err := json.Marshal(s.bodyAsMap())
	return string(data), err
}

// SubsetFromJSON parses the expanded server representation
func SubsetFromJSON(data []byte) (*Subset, error) {
	var raw struct {
		Name       string `json:"Name"`
		Alias      string `json:"Alias"`
		Expression string `json:"Expression"`
		Hierarchy  *struct {
			Name      string `json:"Name"`
			Dimension struct {
				Name string `json:"Name"`
			} `json:"Dimension"`
		} `json:"Hierarchy"`
		Elements []struct {
			Name string `json:"Name"`
		} `json:"Elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	subset := &Subset{
		Name:       raw.Name,
		Alias:      raw.Alias,
		Expression: raw.Expression,
	}
	if raw.Hierarchy != nil {
		subset.HierarchyName = raw.Hierarchy.Name
		subset.DimensionName = raw.Hierarchy.Dimension.Name
	}
	for _, element := range raw.Elements {
		subset.Elements = append(subset.Elements, element.Name)
	}
	return subset, nil
}

// AnonymousSubset is an unnamed subset embedded inline in a view axis
type AnonymousSubset struct {
	Subset
}

// NewAnonymousSubset creates an inline subset for view axes
func NewAnonymousSubset(dimensionName, hierarchyName, expression string, elements []string) *AnonymousSubset {
	inner := NewSubset("", dimensionName, hierarchyName, expression, elements)
	return &AnonymousSubset{Subset: *inner}
}

// Body builds the inline body without a subset name
func (s *AnonymousSubset) Body() (string, error) {
	body := s.bodyAsMap()
	delete(body, "Name")
	data, err := json.Marshal(body)
	return string(data), err
}
