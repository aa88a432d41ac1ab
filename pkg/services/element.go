/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ElementService manages elements, edges and element attributes of a hierarchy
type ElementService struct {
	ObjectService
}

// NewElementService creates the service on a shared session
func NewElementService(client *rest.Client) *ElementService {
	return &ElementService{ObjectService: NewObjectService(client)}
}

func hierarchyURL(dimensionName, hierarchyName string) string {
	return rest.FormatURL("/Dimensions('%s')/Hierarchies('%s')", dimensionName, hierarchyName)
}

// Get reads a single element
func (s *ElementService) Get(ctx context.Context, dimensionName, hierarchyName,
	elementName string) (*objects.Element, error) {

	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')?$select=Name,UniqueName,Type,Level,Index", elementName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var element objects.Element
	if err := resp.JSON(&element); err != nil {
		return nil, errors.Wrap(err, "decoding element")
	}
	return &element, nil
}

// GetElements reads all elements of the hierarchy
func (s *ElementService) GetElements(ctx context.Context, dimensionName,
	hierarchyName string) ([]objects.Element, error) {

	url := hierarchyURL(dimensionName, hierarchyName) +
		"/Elements?$select=Name,UniqueName,Type,Level,Index"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []objects.Element `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding elements")
	}
	return payload.Value, nil
}

// GetNames lists all element names of the hierarchy
func (s *ElementService) GetNames(ctx context.Context, dimensionName, hierarchyName string) ([]string, error) {
	url := hierarchyURL(dimensionName, hierarchyName) + "/Elements?$select=Name"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetLeafNames lists the non-consolidated element names
func (s *ElementService) GetLeafNames(ctx context.Context, dimensionName, hierarchyName string) ([]string, error) {
	url := hierarchyURL(dimensionName, hierarchyName) +
		"/Elements?$select=Name&$filter=Type ne 3"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetConsolidatedNames lists the consolidated element names
func (s *ElementService) GetConsolidatedNames(ctx context.Context, dimensionName, hierarchyName string) ([]string, error) {
	url := hierarchyURL(dimensionName, hierarchyName) +
		"/Elements?$select=Name&$filter=Type eq 3"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetNumberOfElements counts the elements of the hierarchy
func (s *ElementService) GetNumberOfElements(ctx context.Context, dimensionName, hierarchyName string) (int, error) {
	url := hierarchyURL(dimensionName, hierarchyName) + "/Elements/$count"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(strings.TrimSpace(resp.Text()), "%d", &count); err != nil {
		return 0, errors.Wrap(err, "parsing element count")
	}
	return count, nil
}

// GetLevelsCount returns the number of levels of the hierarchy
func (s *ElementService) GetLevelsCount(ctx context.Context, dimensionName, hierarchyName string) (int, error) {
	url := hierarchyURL(dimensionName, hierarchyName) + "/Levels/$count"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(strings.TrimSpace(resp.Text()), "%d", &count); err != nil {
		return 0, errors.Wrap(err, "parsing level count")
	}
	return count, nil
}

// Create adds an element to the hierarchy
func (s *ElementService) Create(ctx context.Context, dimensionName, hierarchyName string,
	element objects.Element) error {

	body, err := element.Body()
	if err != nil {
		return err
	}
	url := hierarchyURL(dimensionName, hierarchyName) + "/Elements"
	_, err = s.rest.POST(ctx, url, body)
	return err
}

// Update replaces an existing element
func (s *ElementService) Update(ctx context.Context, dimensionName, hierarchyName string,
	element objects.Element) error {

	body, err := element.Body()
	if err != nil {
		return err
	}
	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')", element.Name)
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// UpdateOrCreate updates the element if it exists, creates it otherwise
func (s *ElementService) UpdateOrCreate(ctx context.Context, dimensionName, hierarchyName string,
	element objects.Element) error {

	exists, err := s.ExistsByName(ctx, dimensionName, hierarchyName, element.Name)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, dimensionName, hierarchyName, element)
	}
	return s.Create(ctx, dimensionName, hierarchyName, element)
}

// AddElements creates a batch of elements in one request
func (s *ElementService) AddElements(ctx context.Context, dimensionName, hierarchyName string,
	elements []objects.Element) error {

	bodies := make([]map[string]interface{}, 0, len(elements))
	for _, element := range elements {
		bodies = append(bodies, map[string]interface{}{
			"Name": element.Name,
			"Type": element.Type.String(),
		})
	}
	data, err := json.Marshal(bodies)
	if err != nil {
		return err
	}
	url := hierarchyURL(dimensionName, hierarchyName) + "/Elements"
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}

// Delete removes an element from the hierarchy
func (s *ElementService) Delete(ctx context.Context, dimensionName, hierarchyName, elementName string) error {
	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')", elementName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// ExistsByName probes for an element
func (s *ElementService) ExistsByName(ctx context.Context, dimensionName, hierarchyName, elementName string) (bool, error) {
	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')", elementName)
	return s.Exists(ctx, url)
}

// DeleteElements removes a batch of elements by rewriting the hierarchy
func (s *ElementService) DeleteElements(ctx context.Context, dimensionName, hierarchyName string,
	elementNames []string) error {

	if err := s.rest.RequireVersion("DeleteElements", "11.4"); err != nil {
		return err
	}
	hierarchies := NewHierarchyService(s.rest)
	hierarchy, err := hierarchies.Get(ctx, dimensionName, hierarchyName)
	if err != nil {
		return err
	}
	for _, elementName := range elementNames {
		hierarchy.RemoveElement(elementName)
	}
	return hierarchies.Update(ctx, hierarchy)
}

// DeleteElementsUseTI removes a batch of elements through an unbound process.
// Scales better than DeleteElements on large hierarchies since the hierarchy
// is not rewritten.
func (s *ElementService) DeleteElementsUseTI(ctx context.Context, dimensionName, hierarchyName string,
	elementNames []string) error {

	subsets := NewSubsetService(s.rest)
	subset := objects.NewSubset(s.SuggestUniqueObjectName(), dimensionName, hierarchyName, "", elementNames)
	if err := subsets.Create(ctx, subset, false); err != nil {
		return err
	}
	defer func() {
		if err := subsets.Delete(ctx, dimensionName, hierarchyName, subset.Name, false); err != nil {
			logrus.Debugf("Could not delete transient subset '%s': %v\n", subset.Name, err)
		}
	}()

	processes := NewProcessService(s.rest)
	process := objects.NewProcess(s.SuggestUniqueObjectName())
	process.PrologProcedure = fmt.Sprintf("HierarchyDeleteElements('%s','%s','%s');",
		dimensionName, hierarchyName, subset.Name)
	result, err := processes.ExecuteProcessWithReturn(ctx, process)
	if err != nil {
		return err
	}
	if !result.Successful() {
		return rest.NewError("element deletion failed with status '" + result.Status + "'")
	}
	return nil
}

// GetElementsByLevel lists the element names sitting on the given level
func (s *ElementService) GetElementsByLevel(ctx context.Context, dimensionName, hierarchyName string,
	level int) ([]string, error) {

	url := hierarchyURL(dimensionName, hierarchyName) +
		fmt.Sprintf("/Elements?$select=Name&$filter=Level eq %d", level)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetLevelNames lists the level names, top level first when descending is set
func (s *ElementService) GetLevelNames(ctx context.Context, dimensionName, hierarchyName string,
	descending bool) ([]string, error) {

	url := hierarchyURL(dimensionName, hierarchyName) + "/Levels?$select=Name"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	names, err := valueListNames(resp)
	if err != nil {
		return nil, err
	}
	if descending {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	return names, nil
}

// GetAttributeOfElements reads one attribute for the given elements through
// the attributes cube. With no elements given, all elements are read.
func (s *ElementService) GetAttributeOfElements(ctx context.Context, dimensionName, hierarchyName,
	attribute string, elementNames []string, elementUniqueNames bool) (map[string]interface{}, error) {

	var err error
	if len(elementNames) == 0 {
		if elementNames, err = s.GetNames(ctx, dimensionName, hierarchyName); err != nil {
			return nil, err
		}
	}
	members := make([]string, 0, len(elementNames))
	for _, elementName := range elementNames {
		members = append(members, fmt.Sprintf("[%s].[%s].[%s]", dimensionName, hierarchyName, elementName))
	}
	mdx := fmt.Sprintf(
		"SELECT {%s} ON ROWS, {[}ElementAttributes_%s].[%s]} ON COLUMNS FROM [}ElementAttributes_%s]",
		strings.Join(members, ","), dimensionName, attribute, dimensionName)

	cells := NewCellService(s.rest)
	cellset, err := cells.ExecuteMDX(ctx, mdx, ExtractOptions{ElementUniqueNames: elementUniqueNames})
	if err != nil {
		return nil, err
	}
	values := make(map[string]interface{}, len(cellset.Cells))
	for _, cell := range cellset.Cells {
		if len(cell.Coordinates) == 0 {
			continue
		}
		values[cell.Coordinates[0]] = cell.Value
	}
	return values, nil
}

// componentTree is the nested Components expansion of a consolidation
type componentTree struct {
	Name       string              `json:"Name"`
	Type       objects.ElementType `json:"Type"`
	Components []componentTree     `json:"Components"`
}

// GetMembersUnderConsolidation lists the members below a consolidation, down
// to maxDepth levels. A maxDepth of 0 descends the whole tree.
func (s *ElementService) GetMembersUnderConsolidation(ctx context.Context, dimensionName,
	hierarchyName, consolidation string, maxDepth int, leavesOnly bool) ([]string, error) {

	depth := 99
	if maxDepth > 0 {
		depth = maxDepth - 1
	}
	expand := "Components($select=Name,Type" +
		strings.Repeat(";$expand=Components($select=Name,Type", depth) +
		strings.Repeat(")", depth+1)
	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')", consolidation) +
		"?$select=Name,Type&$expand=" + expand

	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var root componentTree
	if err := resp.JSON(&root); err != nil {
		return nil, errors.Wrap(err, "decoding consolidation tree")
	}

	var members []string
	var walk func(nodes []componentTree)
	walk = func(nodes []componentTree) {
		for _, node := range nodes {
			if node.Type != objects.ElementTypeConsolidated {
				members = append(members, node.Name)
				continue
			}
			if !leavesOnly {
				members = append(members, node.Name)
			}
			walk(node.Components)
		}
	}
	walk(root.Components)
	return members, nil
}

// AddEdges creates parent/component relations in one request
func (s *ElementService) AddEdges(ctx context.Context, dimensionName, hierarchyName string,
	edges map[objects.Edge]float64) error {

	bodies := make([]map[string]interface{}, 0, len(edges))
	for edge, weight := range edges {
		bodies = append(bodies, map[string]interface{}{
			"ParentName":    edge.Parent,
			"ComponentName": edge.Component,
			"Weight":        weight,
		})
	}
	data, err := json.Marshal(bodies)
	if err != nil {
		return err
	}
	url := hierarchyURL(dimensionName, hierarchyName) + "/Edges"
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}

// DeleteEdge removes one parent/component relation
func (s *ElementService) DeleteEdge(ctx context.Context, dimensionName, hierarchyName,
	parentName, componentName string) error {

	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')/Components('%s')/$ref", parentName, componentName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// GetParents lists the direct parents of an element
func (s *ElementService) GetParents(ctx context.Context, dimensionName, hierarchyName, elementName string) ([]string, error) {
	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')/Parents?$select=Name", elementName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetChildren lists the direct components of a consolidation
func (s *ElementService) GetChildren(ctx context.Context, dimensionName, hierarchyName, elementName string) ([]string, error) {
	url := hierarchyURL(dimensionName, hierarchyName) +
		rest.FormatURL("/Elements('%s')/Components?$select=Name", elementName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetElementAttributes lists the attributes defined on the hierarchy
func (s *ElementService) GetElementAttributes(ctx context.Context, dimensionName,
	hierarchyName string) ([]objects.ElementAttribute, error) {

	url := hierarchyURL(dimensionName, hierarchyName) + "/ElementAttributes"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []objects.ElementAttribute `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding element attributes")
	}
	return payload.Value, nil
}

// CreateElementAttribute defines a new attribute on the hierarchy
func (s *ElementService) CreateElementAttribute(ctx context.Context, dimensionName,
	hierarchyName string, attribute objects.ElementAttribute) error {

	data, err := json.Marshal(attribute)
	if err != nil {
		return err
	}
	url := hierarchyURL(dimensionName, hierarchyName) + "/ElementAttributes"
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}

// AddElementAttributes defines a batch of attributes in one request
func (s *ElementService) AddElementAttributes(ctx context.Context, dimensionName,
	hierarchyName string, attributes []objects.ElementAttribute) error {

	data, err := json.Marshal(attributes)
	if err != nil {
		return err
	}
	url := hierarchyURL(dimensionName, hierarchyName) + "/ElementAttributes"
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}

// DeleteElementAttribute removes an attribute definition. The definition
// lives in the }ElementAttributes control dimension.
func (s *ElementService) DeleteElementAttribute(ctx context.Context, dimensionName,
	hierarchyName, attributeName string) error {

	url := rest.FormatURL(
		"/Dimensions('}ElementAttributes_%s')/Hierarchies('}ElementAttributes_%s')/Elements('%s')",
		dimensionName, hierarchyName, attributeName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// WriteAttributeValue sets one attribute value through the attributes cube
func (s *ElementService) WriteAttributeValue(ctx context.Context, dimensionName,
	elementName, attributeName string, value interface{}) error {

	cells := NewCellService(s.rest)
	return cells.WriteValue(ctx, value, "}ElementAttributes_"+dimensionName,
		[]string{elementName, attributeName},
		[]string{dimensionName, "}ElementAttributes_" + dimensionName}, "")
}
