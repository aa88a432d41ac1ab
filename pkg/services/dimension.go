/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const dimensionExpand = "?$expand=Hierarchies($expand=Elements($select=Name,Type)," +
	"Edges($select=ParentName,ComponentName,Weight)," +
	"ElementAttributes,Subsets($select=Name),DefaultMember($select=Name))"

// DimensionService manages dimensions and delegates hierarchy structure work
type DimensionService struct {
	ObjectService
	hierarchies *HierarchyService
}

// NewDimensionService creates the service on a shared session
func NewDimensionService(client *rest.Client) *DimensionService {
	return &DimensionService{
		ObjectService: NewObjectService(client),
		hierarchies:   NewHierarchyService(client),
	}
}

// Create stores a new dimension. When the element attributes cannot be
// registered afterwards the dimension is removed again.
func (s *DimensionService) Create(ctx context.Context, dimension *objects.Dimension) error {
	body, err := dimension.Body(false)
	if err != nil {
		return err
	}
	if _, err := s.rest.POST(ctx, "/Dimensions", body); err != nil {
		return err
	}
	for _, hierarchy := range dimension.Hierarchies {
		if objects.NamesEqual(hierarchy.Name, "Leaves") {
			continue
		}
		if err := s.hierarchies.UpdateElementAttributes(ctx, hierarchy); err != nil {
			if deleteErr := s.Delete(ctx, dimension.Name); deleteErr != nil {
				logrus.Debugf("Rollback of dimension '%s' failed: %v\n", dimension.Name, deleteErr)
			}
			return err
		}
	}
	return nil
}

// Get reads a dimension with all hierarchies expanded
func (s *DimensionService) Get(ctx context.Context, dimensionName string) (*objects.Dimension, error) {
	url := rest.FormatURL("/Dimensions('%s')", dimensionName) + dimensionExpand
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.DimensionFromJSON(resp.Body)
}

// GetAll reads every dimension with all hierarchies expanded
func (s *DimensionService) GetAll(ctx context.Context, skipControlDimensions bool) ([]*objects.Dimension, error) {
	url := "/Dimensions" + dimensionExpand
	if skipControlDimensions {
		url += "&$filter=startswith(Name,'}') eq false"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	dimensions := make([]*objects.Dimension, 0, len(entries))
	for _, entry := range entries {
		dimension, err := objects.DimensionFromJSON(entry)
		if err != nil {
			return nil, err
		}
		dimensions = append(dimensions, dimension)
	}
	return dimensions, nil
}

// GetAllNames lists the dimension names
func (s *DimensionService) GetAllNames(ctx context.Context, skipControlDimensions bool) ([]string, error) {
	url := "/Dimensions?$select=Name"
	if skipControlDimensions {
		url += "&$filter=startswith(Name,'}') eq false"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetNumberOfDimensions counts the dimensions
func (s *DimensionService) GetNumberOfDimensions(ctx context.Context, skipControlDimensions bool) (int, error) {
	if skipControlDimensions {
		resp, err := s.rest.GET(ctx,
			"/Dimensions?$select=Name&$filter=startswith(Name,'}') eq false&$count=true")
		if err != nil {
			return 0, err
		}
		var payload struct {
			Count int `json:"@odata.count"`
		}
		if err := resp.JSON(&payload); err != nil {
			return 0, errors.Wrap(err, "decoding dimension count")
		}
		return payload.Count, nil
	}
	resp, err := s.rest.GET(ctx, "/Dimensions/$count")
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(strings.TrimSpace(resp.Text()), "%d", &count); err != nil {
		return 0, errors.Wrap(err, "parsing dimension count")
	}
	return count, nil
}

// Update aligns the server-side dimension with the given definition,
// hierarchy by hierarchy. Leaves is never written.
func (s *DimensionService) Update(ctx context.Context, dimension *objects.Dimension) error {
	existingNames, err := s.hierarchies.GetAllNames(ctx, dimension.Name)
	if err != nil {
		return err
	}
	existing := objects.NewNameSet()
	for _, name := range existingNames {
		existing.Add(name)
	}
	wanted := objects.NewNameSet()
	for _, hierarchy := range dimension.Hierarchies {
		if objects.NamesEqual(hierarchy.Name, "Leaves") {
			continue
		}
		wanted.Add(hierarchy.Name)
		if existing.Contains(hierarchy.Name) {
			if err := s.hierarchies.Update(ctx, hierarchy); err != nil {
				return err
			}
			continue
		}
		if err := s.hierarchies.Create(ctx, hierarchy); err != nil {
			return err
		}
	}
	for _, name := range existingNames {
		if wanted.Contains(name) || objects.NamesEqual(name, "Leaves") {
			continue
		}
		if err := s.hierarchies.Delete(ctx, dimension.Name, name); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrCreate updates the dimension if it exists, creates it otherwise
func (s *DimensionService) UpdateOrCreate(ctx context.Context, dimension *objects.Dimension) error {
	exists, err := s.ExistsByName(ctx, dimension.Name)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, dimension)
	}
	return s.Create(ctx, dimension)
}

// Delete removes a dimension
func (s *DimensionService) Delete(ctx context.Context, dimensionName string) error {
	url := rest.FormatURL("/Dimensions('%s')", dimensionName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// ExistsByName probes for a dimension
func (s *DimensionService) ExistsByName(ctx context.Context, dimensionName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Dimensions('%s')", dimensionName))
}

// UsedInCubes lists the cubes built on the dimension
func (s *DimensionService) UsedInCubes(ctx context.Context, dimensionName string) ([]string, error) {
	url := rest.FormatURL(
		"/Dimensions('%s')/Cubes?$select=Name", dimensionName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}
