/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
)

// AnnotationService manages cell comments on cubes
type AnnotationService struct {
	ObjectService
}

// NewAnnotationService creates the service on a shared session
func NewAnnotationService(client *rest.Client) *AnnotationService {
	return &AnnotationService{ObjectService: NewObjectService(client)}
}

// Get reads an annotation by id
func (s *AnnotationService) Get(ctx context.Context, annotationID string) (*objects.Annotation, error) {
	url := rest.FormatURL("/Annotations('%s')?$expand=DimensionalContext($select=Name)", annotationID)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.AnnotationFromJSON(resp.Body)
}

// GetAll reads the annotations of a cube
func (s *AnnotationService) GetAll(ctx context.Context, cubeName string) ([]*objects.Annotation, error) {
	url := rest.FormatURL(
		"/Cubes('%s')/Annotations?$expand=DimensionalContext($select=Name)", cubeName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	annotations := make([]*objects.Annotation, 0, len(entries))
	for _, entry := range entries {
		annotation, err := objects.AnnotationFromJSON(entry)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, annotation)
	}
	return annotations, nil
}

// Create stores a new annotation. The cube dimension order determines how the
// dimensional context is bound.
func (s *AnnotationService) Create(ctx context.Context, annotation *objects.Annotation) error {
	cubes := NewCubeService(s.rest)
	dimensions, err := cubes.GetDimensionNames(ctx, annotation.ObjectName)
	if err != nil {
		return err
	}
	body, err := annotation.BodyForPost(dimensions)
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/Annotations", body)
	return err
}

// Update rewrites the text of an existing annotation
func (s *AnnotationService) Update(ctx context.Context, annotation *objects.Annotation) error {
	body, err := annotation.Body()
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Annotations('%s')", annotation.ID)
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// Delete removes an annotation
func (s *AnnotationService) Delete(ctx context.Context, annotationID string) error {
	url := rest.FormatURL("/Annotations('%s')", annotationID)
	_, err := s.rest.DELETE(ctx, url)
	return err
}
