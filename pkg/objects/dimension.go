/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import "encoding/json"

// Dimension mirrors a server-side dimension with its hierarchies. The Leaves
// hierarchy is maintained by the server and never part of a request body.
type Dimension struct {
	Name        string
	Hierarchies []*Hierarchy
}

// NewDimension creates a dimension; a default hierarchy of the same name can
// be added through AddHierarchy
func NewDimension(name string, hierarchies ...*Hierarchy) *Dimension {
	d := &Dimension{Name: name}
	for _, hierarchy := range hierarchies {
		d.AddHierarchy(hierarchy)
	}
	return d
}

// UniqueName returns the bracketed unique name of the dimension
func (d *Dimension) UniqueName() string {
	return "[" + d.Name + "]"
}

// AddHierarchy appends a hierarchy and stamps the dimension name on it
func (d *Dimension) AddHierarchy(hierarchy *Hierarchy) {
	hierarchy.DimensionName = d.Name
	d.Hierarchies = append(d.Hierarchies, hierarchy)
}

// GetHierarchy looks a hierarchy up case-and-space-insensitively
func (d *Dimension) GetHierarchy(name string) (*Hierarchy, bool) {
	for _, hierarchy := range d.Hierarchies {
		if NamesEqual(hierarchy.Name, name) {
			return hierarchy, true
		}
	}
	return nil, false
}

// RemoveHierarchy drops a hierarchy by name
func (d *Dimension) RemoveHierarchy(name string) {
	for i, hierarchy := range d.Hierarchies {
		if NamesEqual(hierarchy.Name, name) {
			d.Hierarchies = append(d.Hierarchies[:i], d.Hierarchies[i+1:]...)
			return
		}
	}
}

// DefaultHierarchy returns the hierarchy named after the dimension
func (d *Dimension) DefaultHierarchy() (*Hierarchy, bool) {
	return d.GetHierarchy(d.Name)
}

// HierarchyNames returns the names of all hierarchies, Leaves included
func (d *Dimension) HierarchyNames() []string {
	names := make([]string, 0, len(d.Hierarchies))
	for _, hierarchy := range d.Hierarchies {
		names = append(names, hierarchy.Name)
	}
	return names
}

// Body builds the creation body. Leaves is skipped: the server creates it.
func (d *Dimension) Body(includeElementAttributes bool) (string, error) {
	body := make(map[string]interface{})
	body["Name"] = d.Name
	body["UniqueName"] = d.UniqueName()
	body["Attributes"] = map[string]string{"Caption": d.Name}

	hierarchies := make([]json.RawMessage, 0, len(d.Hierarchies))
	for _, hierarchy := range d.Hierarchies {
		if NamesEqual(hierarchy.Name, "Leaves") {
			continue
		}
		hierarchyBody, err := hierarchy.Body(includeElementAttributes)
		if err != nil {
			return "", err
		}
		hierarchies = append(hierarchies, json.RawMessage(hierarchyBody))
	}
	body["Hierarchies"] = hierarchies

	data, err := json.Marshal(body)
	return string(data), err
}

// DimensionFromJSON parses the expanded server representation
func DimensionFromJSON(data []byte) (*Dimension, error) {
	var raw struct {
		Name        string            `json:"Name"`
		Hierarchies []json.RawMessage `json:"Hierarchies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	d := &Dimension{Name: raw.Name}
	for _, rawHierarchy := range raw.Hierarchies {
		hierarchy, err := HierarchyFromJSON(raw.Name, rawHierarchy)
		if err != nil {
			return nil, err
		}
		d.Hierarchies = append(d.Hierarchies, hierarchy)
	}
	return d, nil
}
