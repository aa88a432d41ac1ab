/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"fmt"
)

// Hierarchy mirrors a hierarchy within a dimension: ordered elements, edges
// with weights and the attributes defined on the elements.
type Hierarchy struct {
	Name              string
	DimensionName     string
	Elements          []Element
	ElementAttributes []ElementAttribute
	Edges             map[Edge]float64
	Subsets           []string
	DefaultMemberName string

	index map[string]int
}

// NewHierarchy creates a hierarchy with the given elements and edges
func NewHierarchy(name, dimensionName string, elements []Element, edges map[Edge]float64) *Hierarchy {
	h := &Hierarchy{
		Name:          name,
		DimensionName: dimensionName,
		Edges:         map[Edge]float64{},
	}
	for _, element := range elements {
		h.AddElement(element.Name, element.Type)
	}
	for edge, weight := range edges {
		h.Edges[edge] = weight
	}
	return h
}

func (h *Hierarchy) ensureIndex() {
	if h.index != nil {
		return
	}
	h.index = make(map[string]int, len(h.Elements))
	for i, element := range h.Elements {
		h.index[NormalizeName(element.Name)] = i
	}
}

// AddElement appends an element, replacing an existing one with the same name
func (h *Hierarchy) AddElement(name string, elementType ElementType) {
	h.ensureIndex()
	if i, ok := h.index[NormalizeName(name)]; ok {
		h.Elements[i] = NewElement(name, elementType)
		return
	}
	h.Elements = append(h.Elements, NewElement(name, elementType))
	h.index[NormalizeName(name)] = len(h.Elements) - 1
}

// GetElement looks an element up case-and-space-insensitively
func (h *Hierarchy) GetElement(name string) (Element, bool) {
	h.ensureIndex()
	if i, ok := h.index[NormalizeName(name)]; ok {
		return h.Elements[i], true
	}
	return Element{}, false
}

// RemoveElement drops an element and every edge touching it
func (h *Hierarchy) RemoveElement(name string) {
	h.ensureIndex()
	i, ok := h.index[NormalizeName(name)]
	if !ok {
		return
	}
	h.Elements = append(h.Elements[:i], h.Elements[i+1:]...)
	h.index = nil
	for edge := range h.Edges {
		if NamesEqual(edge.Parent, name) || NamesEqual(edge.Component, name) {
			delete(h.Edges, edge)
		}
	}
}

// AddEdge records a parent/component relation with the given weight
func (h *Hierarchy) AddEdge(parent, component string, weight float64) {
	if h.Edges == nil {
		h.Edges = map[Edge]float64{}
	}
	h.Edges[Edge{Parent: parent, Component: component}] = weight
}

// RemoveEdge drops a parent/component relation
func (h *Hierarchy) RemoveEdge(parent, component string) {
	for edge := range h.Edges {
		if NamesEqual(edge.Parent, parent) && NamesEqual(edge.Component, component) {
			delete(h.Edges, edge)
		}
	}
}

// AddElementAttribute registers an attribute unless it already exists
func (h *Hierarchy) AddElementAttribute(name string, attributeType ElementAttributeType) {
	for _, attribute := range h.ElementAttributes {
		if NamesEqual(attribute.Name, name) {
			return
		}
	}
	h.ElementAttributes = append(h.ElementAttributes,
		ElementAttribute{Name: name, Type: attributeType})
}

// RemoveElementAttribute drops an attribute by name
func (h *Hierarchy) RemoveElementAttribute(name string) {
	for i, attribute := range h.ElementAttributes {
		if NamesEqual(attribute.Name, name) {
			h.ElementAttributes = append(h.ElementAttributes[:i], h.ElementAttributes[i+1:]...)
			return
		}
	}
}

// Contains reports whether the hierarchy holds the element
func (h *Hierarchy) Contains(elementName string) bool {
	_, ok := h.GetElement(elementName)
	return ok
}

// Children returns the direct components of a consolidation
func (h *Hierarchy) Children(parent string) []string {
	var children []string
	for edge := range h.Edges {
		if NamesEqual(edge.Parent, parent) {
			children = append(children, edge.Component)
		}
	}
	return children
}

// Parents returns the direct parents of an element
func (h *Hierarchy) Parents(component string) []string {
	var parents []string
	for edge := range h.Edges {
		if NamesEqual(edge.Component, component) {
			parents = append(parents, edge.Parent)
		}
	}
	return parents
}

// Descendants returns every element reachable below the given consolidation
func (h *Hierarchy) Descendants(parent string) []string {
	seen := NewNameSet()
	var walk func(name string)
	walk = func(name string) {
		for _, child := range h.Children(name) {
			if seen.Contains(child) {
				continue
			}
			seen.Add(child)
			walk(child)
		}
	}
	walk(parent)
	return seen.Values()
}

// Ancestors returns every consolidation above the given element
func (h *Hierarchy) Ancestors(component string) []string {
	seen := NewNameSet()
	var walk func(name string)
	walk = func(name string) {
		for _, parent := range h.Parents(name) {
			if seen.Contains(parent) {
				continue
			}
			seen.Add(parent)
			walk(parent)
		}
	}
	walk(component)
	return seen.Values()
}

type edgeBody struct {
	ParentName    string  `json:"ParentName"`
	ComponentName string  `json:"ComponentName"`
	Weight        float64 `json:"Weight"`
}

// Body builds the creation body: elements, edges and the attributes when
// includeElementAttributes is set
func (h *Hierarchy) Body(includeElementAttributes bool) (string, error) {
	body := make(map[string]interface{})
	body["Name"] = h.Name
	elements := make([]map[string]interface{}, 0, len(h.Elements))
	for _, element := range h.Elements {
		elements = append(elements, map[string]interface{}{
			"Name": element.Name,
			"Type": element.Type.String(),
		})
	}
	body["Elements"] = elements
	edges := make([]edgeBody, 0, len(h.Edges))
	for edge, weight := range h.Edges {
		edges = append(edges, edgeBody{
			ParentName:    edge.Parent,
			ComponentName: edge.Component,
			Weight:        weight,
		})
	}
	body["Edges"] = edges
	if includeElementAttributes && len(h.ElementAttributes) > 0 {
		body["ElementAttributes"] = h.ElementAttributes
	}
	data, err := json.Marshal(body)
	return string(data), err
}

// HierarchyFromJSON parses the expanded server representation
func HierarchyFromJSON(dimensionName string, data []byte) (*Hierarchy, error) {
	var raw struct {
		Name     string    `json:"Name"`
		Elements []Element `json:"Elements"`
		Edges    []struct {
			ParentName    string  `json:"ParentName"`
			ComponentName string  `json:"ComponentName"`
			Weight        float64 `json:"Weight"`
		} `json:"Edges"`
		ElementAttributes []ElementAttribute `json:"ElementAttributes"`
		Subsets           []struct {
			Name string `json:"Name"`
		} `json:"Subsets"`
		DefaultMember *struct {
			Name string `json:"Name"`
		} `json:"DefaultMember"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hierarchy: %w", err)
	}
	h := NewHierarchy(raw.Name, dimensionName, raw.Elements, nil)
	for _, edge := range raw.Edges {
		h.AddEdge(edge.ParentName, edge.ComponentName, edge.Weight)
	}
	h.ElementAttributes = raw.ElementAttributes
	for _, subset := range raw.Subsets {
		h.Subsets = append(h.Subsets, subset.Name)
	}
	if raw.DefaultMember != nil {
		h.DefaultMemberName = raw.DefaultMember.Name
	}
	return h, nil
}
