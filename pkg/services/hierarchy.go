/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
)

const hierarchyExpand = "?$expand=Elements($select=Name,Type)," +
	"Edges($select=ParentName,ComponentName,Weight)," +
	"ElementAttributes,Subsets($select=Name),DefaultMember($select=Name)"

// HierarchyService manages the hierarchies of a dimension
type HierarchyService struct {
	ObjectService
	elements *ElementService
}

// NewHierarchyService creates the service on a shared session
func NewHierarchyService(client *rest.Client) *HierarchyService {
	return &HierarchyService{
		ObjectService: NewObjectService(client),
		elements:      NewElementService(client),
	}
}

// Create stores a new hierarchy inside an existing dimension
func (s *HierarchyService) Create(ctx context.Context, hierarchy *objects.Hierarchy) error {
	body, err := hierarchy.Body(false)
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Dimensions('%s')/Hierarchies", hierarchy.DimensionName)
	if _, err := s.rest.POST(ctx, url, body); err != nil {
		return err
	}
	return s.UpdateElementAttributes(ctx, hierarchy)
}

// Get reads a hierarchy with elements, edges, attributes and subsets
func (s *HierarchyService) Get(ctx context.Context, dimensionName, hierarchyName string) (*objects.Hierarchy, error) {
	url := hierarchyURL(dimensionName, hierarchyName) + hierarchyExpand
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.HierarchyFromJSON(dimensionName, resp.Body)
}

// GetAllNames lists the hierarchy names of a dimension, Leaves included
func (s *HierarchyService) GetAllNames(ctx context.Context, dimensionName string) ([]string, error) {
	url := rest.FormatURL("/Dimensions('%s')/Hierarchies?$select=Name", dimensionName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Update rewrites the hierarchy structure: elements and attributes are
// patched, edges are replaced wholesale
func (s *HierarchyService) Update(ctx context.Context, hierarchy *objects.Hierarchy) error {
	body, err := hierarchy.Body(false)
	if err != nil {
		return err
	}
	url := hierarchyURL(hierarchy.DimensionName, hierarchy.Name)
	if _, err := s.rest.DELETE(ctx, url+"/Edges"); err != nil && !rest.IsNotFound(err) {
		return err
	}
	if _, err := s.rest.PATCH(ctx, url, body); err != nil {
		return err
	}
	return s.UpdateElementAttributes(ctx, hierarchy)
}

// UpdateOrCreate updates the hierarchy if it exists, creates it otherwise
func (s *HierarchyService) UpdateOrCreate(ctx context.Context, hierarchy *objects.Hierarchy) error {
	exists, err := s.ExistsByName(ctx, hierarchy.DimensionName, hierarchy.Name)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, hierarchy)
	}
	return s.Create(ctx, hierarchy)
}

// Delete removes a hierarchy from its dimension
func (s *HierarchyService) Delete(ctx context.Context, dimensionName, hierarchyName string) error {
	_, err := s.rest.DELETE(ctx, hierarchyURL(dimensionName, hierarchyName))
	return err
}

// ExistsByName probes for a hierarchy
func (s *HierarchyService) ExistsByName(ctx context.Context, dimensionName, hierarchyName string) (bool, error) {
	return s.Exists(ctx, hierarchyURL(dimensionName, hierarchyName))
}

// GetDefaultMember returns the name of the default member, if one is set
func (s *HierarchyService) GetDefaultMember(ctx context.Context, dimensionName, hierarchyName string) (string, error) {
	url := hierarchyURL(dimensionName, hierarchyName) + "/DefaultMember?$select=Name"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		if rest.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	var payload struct {
		Name string `json:"Name"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", err
	}
	return payload.Name, nil
}

// UpdateDefaultMember sets the default member through the hierarchy
// properties control cube
func (s *HierarchyService) UpdateDefaultMember(ctx context.Context, dimensionName,
	hierarchyName, memberName string) error {

	cells := NewCellService(s.rest)
	return cells.WriteValue(ctx, memberName, "}HierarchyProperties",
		[]string{dimensionName, hierarchyName, "defaultMember"},
		[]string{"}Dimensions", "}Hierarchies", "}HierarchyProperties"}, "")
}

// UpdateElementAttributes aligns the server-side attribute definitions with
// the ones carried by the hierarchy
func (s *HierarchyService) UpdateElementAttributes(ctx context.Context, hierarchy *objects.Hierarchy) error {
	existing, err := s.elements.GetElementAttributes(ctx, hierarchy.DimensionName, hierarchy.Name)
	if err != nil {
		return err
	}
	existingNames := objects.NewNameSet()
	for _, attribute := range existing {
		existingNames.Add(attribute.Name)
	}
	wantedNames := objects.NewNameSet()
	for _, attribute := range hierarchy.ElementAttributes {
		wantedNames.Add(attribute.Name)
		if existingNames.Contains(attribute.Name) {
			continue
		}
		if err := s.elements.CreateElementAttribute(ctx,
			hierarchy.DimensionName, hierarchy.Name, attribute); err != nil {
			return err
		}
	}
	for _, attribute := range existing {
		if wantedNames.Contains(attribute.Name) {
			continue
		}
		if err := s.elements.DeleteElementAttribute(ctx,
			hierarchy.DimensionName, hierarchy.Name, attribute.Name); err != nil {
			return err
		}
	}
	return nil
}

// AddEdges creates parent/component relations. Fails if an edge already exists.
func (s *HierarchyService) AddEdges(ctx context.Context, dimensionName, hierarchyName string,
	edges map[objects.Edge]float64) error {

	return s.elements.AddEdges(ctx, dimensionName, hierarchyName, edges)
}

// AddElements creates a batch of elements. Fails if an element already exists.
func (s *HierarchyService) AddElements(ctx context.Context, dimensionName, hierarchyName string,
	elements []objects.Element) error {

	return s.elements.AddElements(ctx, dimensionName, hierarchyName, elements)
}

// AddElementAttributes defines a batch of attributes. Fails if an attribute
// already exists.
func (s *HierarchyService) AddElementAttributes(ctx context.Context, dimensionName, hierarchyName string,
	attributes []objects.ElementAttribute) error {

	return s.elements.AddElementAttributes(ctx, dimensionName, hierarchyName, attributes)
}

// RemoveEdgesUnderConsolidation unwinds every consolidation within the
// subtree of the given element, keeping the elements in place
func (s *HierarchyService) RemoveEdgesUnderConsolidation(ctx context.Context, dimensionName,
	hierarchyName, consolidation string) error {

	hierarchy, err := s.Get(ctx, dimensionName, hierarchyName)
	if err != nil {
		return err
	}
	members, err := s.elements.GetMembersUnderConsolidation(ctx, dimensionName, hierarchyName,
		consolidation, 0, false)
	if err != nil {
		return err
	}
	subtree := objects.NewNameSet(members...)
	subtree.Add(consolidation)
	for edge := range hierarchy.Edges {
		if subtree.Contains(edge.Parent) && subtree.Contains(edge.Component) {
			delete(hierarchy.Edges, edge)
		}
	}
	return s.Update(ctx, hierarchy)
}

// IsBalanced reports whether all leaves of the hierarchy sit on the same level
func (s *HierarchyService) IsBalanced(ctx context.Context, dimensionName, hierarchyName string) (bool, error) {
	url := hierarchyURL(dimensionName, hierarchyName) + "/Structure/$value"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(resp.Text()) {
	case "0":
		return true, nil
	case "2":
		return false, nil
	default:
		return false, rest.NewError("unexpected hierarchy structure value '" +
			strings.TrimSpace(resp.Text()) + "'")
	}
}

// RemoveAllElements drops every element, and with them every edge
func (s *HierarchyService) RemoveAllElements(ctx context.Context, dimensionName, hierarchyName string) error {
	url := hierarchyURL(dimensionName, hierarchyName)
	_, err := s.rest.PATCH(ctx, url, `{"Elements":[]}`)
	return err
}

// RemoveAllEdges unwinds every consolidation while keeping the elements
func (s *HierarchyService) RemoveAllEdges(ctx context.Context, dimensionName, hierarchyName string) error {
	url := hierarchyURL(dimensionName, hierarchyName)
	_, err := s.rest.PATCH(ctx, url, `{"Edges":[]}`)
	return err
}
