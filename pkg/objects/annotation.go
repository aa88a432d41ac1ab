/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// Annotation mirrors a cell comment on a cube
type Annotation struct {
	ID                 string
	Text               string
	Creator            string
	Created            string
	LastUpdatedBy      string
	LastUpdated        string
	ObjectName         string
	DimensionalContext []string
	CommentValue       string
	CommentType        string
}

// NewAnnotation creates a comment on the given cube intersection
func NewAnnotation(objectName, text string, dimensionalContext []string) *Annotation {
	return &Annotation{
		ObjectName:         objectName,
		Text:               text,
		CommentValue:       text,
		CommentType:        "ANNOTATION",
		DimensionalContext: dimensionalContext,
	}
}

// BodyForPost builds the creation body. The cube dimensions pair up with the
// dimensional context to form member references.
func (a *Annotation) BodyForPost(cubeDimensions []string) (string, error) {
	bindings := make([]string, 0, len(a.DimensionalContext))
	for i, element := range a.DimensionalContext {
		if i >= len(cubeDimensions) {
			break
		}
		bindings = append(bindings, rest.FormatURL(
			"Dimensions('%s')/Hierarchies('%s')/Members('%s')",
			cubeDimensions[i], cubeDimensions[i], element))
	}
	body := map[string]interface{}{
		"Text": a.Text,
		"ApplicationContext": []map[string]string{{
			"Facet@odata.bind": "ApplicationContextFacets('}Cubes')",
			"Value":            a.ObjectName,
		}},
		"DimensionalContext@odata.bind": bindings,
		"objectName":                    a.ObjectName,
		"commentValue":                  a.CommentValue,
		"commentType":                   "ANNOTATION",
		"commentLocation":               "",
	}
	data, err := json.Marshal(body)
	return string(data), err
}

// Body builds the update body of an existing annotation
func (a *Annotation) Body() (string, error) {
	body := map[string]interface{}{
		"ID":            a.ID,
		"Text":          a.Text,
		"Creator":       a.Creator,
		"Created":       a.Created,
		"LastUpdatedBy": a.LastUpdatedBy,
		"LastUpdated":   a.LastUpdated,
		"commentValue":  a.CommentValue,
	}
	data, err := json.Marshal(body)
	return string(data), err
}

// AnnotationFromJSON parses the server representation
func AnnotationFromJSON(data []byte) (*Annotation, error) {
	var raw struct {
		ID                 string `json:"ID"`
		Text               string `json:"Text"`
		Creator            string `json:"Creator"`
		Created            string `json:"Created"`
		LastUpdatedBy      string `json:"LastUpdatedBy"`
		LastUpdated        string `json:"LastUpdated"`
		CommentValue       string `json:"commentValue"`
		ObjectName         string `json:"objectName"`
		DimensionalContext []struct {
			Name string `json:"Name"`
		} `json:"DimensionalContext"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	annotation := &Annotation{
		ID:            raw.ID,
		Text:          raw.Text,
		Creator:       raw.Creator,
		Created:       raw.Created,
		LastUpdatedBy: raw.LastUpdatedBy,
		LastUpdated:   raw.LastUpdated,
		CommentValue:  raw.CommentValue,
		ObjectName:    raw.ObjectName,
		CommentType:   "ANNOTATION",
	}
	for _, member := range raw.DimensionalContext {
		annotation.DimensionalContext = append(annotation.DimensionalContext, member.Name)
	}
	return annotation, nil
}
