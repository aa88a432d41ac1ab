/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ElementType is the type of an element within a hierarchy
type ElementType int

const (
	ElementTypeNumeric ElementType = iota + 1
	ElementTypeString
	ElementTypeConsolidated
)

func (t ElementType) String() string {
	switch t {
	case ElementTypeNumeric:
		return "Numeric"
	case ElementTypeString:
		return "String"
	case ElementTypeConsolidated:
		return "Consolidated"
	default:
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
}

// ParseElementType parses an element type name case-insensitively
func ParseElementType(value string) (ElementType, error) {
	switch NormalizeName(value) {
	case "numeric":
		return ElementTypeNumeric, nil
	case "string":
		return ElementTypeString, nil
	case "consolidated":
		return ElementTypeConsolidated, nil
	default:
		return 0, fmt.Errorf("invalid element type: '%s'", value)
	}
}

// MarshalJSON writes the type under its server-side name
func (t ElementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the server-side type name
func (t *ElementType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseElementType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Element mirrors a hierarchy element
type Element struct {
	Name       string      `json:"Name"`
	UniqueName string      `json:"UniqueName,omitempty"`
	Type       ElementType `json:"Type"`
	Index      int         `json:"Index,omitempty"`
	Level      int         `json:"Level,omitempty"`
}

// NewElement creates an element of the given type
func NewElement(name string, elementType ElementType) Element {
	return Element{Name: name, Type: elementType}
}

// Body builds the creation body of the element
func (e Element) Body() (string, error) {
	data, err := json.Marshal(map[string]interface{}{
		"Name": e.Name,
		"Type": e.Type.String(),
	})
	return string(data), err
}

// ElementAttributeType is the type of an element attribute
type ElementAttributeType int

const (
	ElementAttributeNumeric ElementAttributeType = iota + 1
	ElementAttributeString
	ElementAttributeAlias
)

func (t ElementAttributeType) String() string {
	switch t {
	case ElementAttributeNumeric:
		return "Numeric"
	case ElementAttributeString:
		return "String"
	case ElementAttributeAlias:
		return "Alias"
	default:
		return fmt.Sprintf("ElementAttributeType(%d)", int(t))
	}
}

// ParseElementAttributeType parses an attribute type name case-insensitively
func ParseElementAttributeType(value string) (ElementAttributeType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "numeric":
		return ElementAttributeNumeric, nil
	case "string":
		return ElementAttributeString, nil
	case "alias":
		return ElementAttributeAlias, nil
	default:
		return 0, fmt.Errorf("invalid element attribute type: '%s'", value)
	}
}

// MarshalJSON writes the type under its server-side name
func (t ElementAttributeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the server-side type name
func (t *ElementAttributeType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseElementAttributeType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ElementAttribute mirrors an attribute defined on a hierarchy
type ElementAttribute struct {
	Name string               `json:"Name"`
	Type ElementAttributeType `json:"Type"`
}

// Body builds the creation body of the attribute
func (a ElementAttribute) Body() (string, error) {
	data, err := json.Marshal(a)
	return string(data), err
}

// Edge is a parent/component relation within a hierarchy
type Edge struct {
	Parent    string
	Component string
}

// MarshalText renders the edge as parent/component, allowing maps keyed by
// Edge to be JSON encoded
func (e Edge) MarshalText() ([]byte, error) {
	return []byte(e.Parent + "/" + e.Component), nil
}

// EdgeWeight pairs an edge with its consolidation weight
type EdgeWeight struct {
	Edge
	Weight float64
}
