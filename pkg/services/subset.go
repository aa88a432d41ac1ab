/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"encoding/json"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
)

const subsetExpand = "?$expand=Hierarchy($select=Name;$expand=Dimension($select=Name))," +
	"Elements($select=Name)"

// SubsetService manages public and private subsets on hierarchies
type SubsetService struct {
	ObjectService
}

// NewSubsetService creates the service on a shared session
func NewSubsetService(client *rest.Client) *SubsetService {
	return &SubsetService{ObjectService: NewObjectService(client)}
}

func subsetsSegment(private bool) string {
	if private {
		return "PrivateSubsets"
	}
	return "Subsets"
}

func subsetURL(dimensionName, hierarchyName, subsetName string, private bool) string {
	return hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/"+subsetsSegment(private)+"('%s')", subsetName)
}

// Create stores a new subset
func (s *SubsetService) Create(ctx context.Context, subset *objects.Subset, private bool) error {
	body, err := subset.Body()
	if err != nil {
		return err
	}
	url := hierarchyURL(subset.DimensionName, subset.HierarchyName) + "/" + subsetsSegment(private)
	_, err = s.rest.POST(ctx, url, body)
	return err
}

// Get reads a subset with its elements expanded
func (s *SubsetService) Get(ctx context.Context, dimensionName, hierarchyName,
	subsetName string, private bool) (*objects.Subset, error) {

	url := subsetURL(dimensionName, hierarchyName, subsetName, private) + subsetExpand
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.SubsetFromJSON(resp.Body)
}

// GetAllNames lists the subset names of a hierarchy
func (s *SubsetService) GetAllNames(ctx context.Context, dimensionName, hierarchyName string,
	private bool) ([]string, error) {

	url := hierarchyURL(dimensionName, hierarchyName) +
		"/" + subsetsSegment(private) + "?$select=Name"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Update rewrites the subset definition. A static subset gets its element
// references cleared first so removed elements do not linger.
func (s *SubsetService) Update(ctx context.Context, subset *objects.Subset, private bool) error {
	url := subsetURL(subset.DimensionName, subset.HierarchyName, subset.Name, private)
	if subset.IsStatic() {
		if _, err := s.rest.DELETE(ctx, url+"/Elements/$ref"); err != nil && !rest.IsNotFound(err) {
			return err
		}
	}
	body, err := subset.Body()
	if err != nil {
		return err
	}
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// UpdateOrCreate updates the subset if it exists, creates it otherwise
func (s *SubsetService) UpdateOrCreate(ctx context.Context, subset *objects.Subset, private bool) error {
	exists, err := s.ExistsByName(ctx, subset.DimensionName, subset.HierarchyName, subset.Name, private)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, subset, private)
	}
	return s.Create(ctx, subset, private)
}

// Delete removes a subset
func (s *SubsetService) Delete(ctx context.Context, dimensionName, hierarchyName,
	subsetName string, private bool) error {

	_, err := s.rest.DELETE(ctx, subsetURL(dimensionName, hierarchyName, subsetName, private))
	return err
}

// ExistsByName probes for a subset
func (s *SubsetService) ExistsByName(ctx context.Context, dimensionName, hierarchyName,
	subsetName string, private bool) (bool, error) {

	return s.Exists(ctx, subsetURL(dimensionName, hierarchyName, subsetName, private))
}

// DeleteElementsFromStaticSubset clears the element references of a static
// subset, leaving the subset itself in place
func (s *SubsetService) DeleteElementsFromStaticSubset(ctx context.Context, dimensionName,
	hierarchyName, subsetName string, private bool) error {

	url := subsetURL(dimensionName, hierarchyName, subsetName, private) + "/Elements/$ref"
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// GetElementNames resolves the element names the subset currently yields. A
// dynamic subset has its expression evaluated on the server.
func (s *SubsetService) GetElementNames(ctx context.Context, dimensionName, hierarchyName,
	subsetName string, private bool) ([]string, error) {

	subset, err := s.Get(ctx, dimensionName, hierarchyName, subsetName, private)
	if err != nil {
		return nil, err
	}
	if subset.IsStatic() {
		return subset.Elements, nil
	}
	return s.ExecuteSetExpression(ctx, subset.Expression)
}

// ExecuteSetExpression evaluates an MDX set expression into member names
func (s *SubsetService) ExecuteSetExpression(ctx context.Context, expression string) ([]string, error) {
	data, err := json.Marshal(map[string]string{"MDX": expression})
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx,
		"/ExecuteMDXSetExpression?$expand=Tuples($expand=Members($select=Name))", string(data))
	if err != nil {
		return nil, err
	}
	var payload struct {
		Tuples []struct {
			Members []struct {
				Name string `json:"Name"`
			} `json:"Members"`
		} `json:"Tuples"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding set expression result")
	}
	var names []string
	for _, tuple := range payload.Tuples {
		for _, member := range tuple.Members {
			names = append(names, member.Name)
		}
	}
	return names, nil
}

// MakeStatic freezes a dynamic subset into its current element list
func (s *SubsetService) MakeStatic(ctx context.Context, dimensionName, hierarchyName,
	subsetName string, private bool) error {

	subset, err := s.Get(ctx, dimensionName, hierarchyName, subsetName, private)
	if err != nil {
		return err
	}
	if subset.IsStatic() {
		return nil
	}
	elements, err := s.ExecuteSetExpression(ctx, subset.Expression)
	if err != nil {
		return err
	}
	// recreate: a PATCH would leave the old expression in place
	subset.Expression = ""
	subset.Elements = elements
	subset.DimensionName = dimensionName
	subset.HierarchyName = hierarchyName
	if err := s.Delete(ctx, dimensionName, hierarchyName, subsetName, private); err != nil {
		return err
	}
	return s.Create(ctx, subset, private)
}
