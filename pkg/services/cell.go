/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CellValue addresses one cell by its element coordinates
type CellValue struct {
	Coordinates []string
	Value       interface{}
}

// Cell is one cell of an extracted cellset
type Cell struct {
	Coordinates  []string
	Ordinal      int
	Value        interface{}
	RuleDerived  bool
	Consolidated bool
	Updateable   int
}

// Cellset is the extracted content of a server-side cellset
type Cellset struct {
	ID    string
	Cube  string
	Cells []Cell
}

// Values returns the plain cell values in ordinal order
func (c *Cellset) Values() []interface{} {
	values := make([]interface{}, 0, len(c.Cells))
	for _, cell := range c.Cells {
		values = append(values, cell.Value)
	}
	return values
}

// ExtractOptions steer which cells an extraction returns
type ExtractOptions struct {
	Top                int
	Skip               int
	SkipZeros          bool
	SkipConsolidated   bool
	SkipRuleDerived    bool
	ElementUniqueNames bool
	SandboxName        string
	DeleteCellset      bool
}

// WriteOptions steer the write dispatch
type WriteOptions struct {
	Dimensions               []string
	Increment                bool
	UseTI                    bool
	SandboxName              string
	Changeset                string
	DeactivateTransactionLog bool
	ReactivateTransactionLog bool
	// async slicing
	SliceSize  int
	MaxWorkers int
}

const defaultWriteSliceSize = 250000

// CellService reads and writes cube cells through cellsets, direct updates
// and unbound processes
type CellService struct {
	ObjectService
}

// NewCellService creates the service on a shared session
func NewCellService(client *rest.Client) *CellService {
	return &CellService{ObjectService: NewObjectService(client)}
}

func sandboxParams(sandboxName, changeset string) map[string]string {
	return map[string]string{"!sandbox": sandboxName, "!ChangeSet": changeset}
}

// getDimensionNamesForWriting reads the dimension order of the cube
func (s *CellService) getDimensionNamesForWriting(ctx context.Context, cubeName string) ([]string, error) {
	url := rest.FormatURL("/Cubes('%s')/Dimensions?$select=Name", cubeName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// WriteValue writes a single cell through the cube update action
func (s *CellService) WriteValue(ctx context.Context, value interface{}, cubeName string,
	elements []string, dimensions []string, sandboxName string) error {

	var err error
	if dimensions == nil {
		if dimensions, err = s.getDimensionNamesForWriting(ctx, cubeName); err != nil {
			return err
		}
	}
	url := rest.FormatURL("/Cubes('%s')/tm1.Update", cubeName)
	url = rest.AddURLParameters(url, sandboxParams(sandboxName, ""))

	bindings := make([]string, 0, len(dimensions))
	for i, dimension := range dimensions {
		if i >= len(elements) {
			break
		}
		bindings = append(bindings, rest.FormatURL(
			"Dimensions('%s')/Hierarchies('%s')/Elements('%s')",
			dimension, dimension, elements[i]))
	}
	data, err := json.Marshal(map[string]interface{}{
		"Cells": []map[string]interface{}{{"Tuple@odata.bind": bindings}},
		"Value": value,
	})
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}

// WriteValues writes cells through one update document per coordinate tuple
func (s *CellService) WriteValues(ctx context.Context, cubeName string, cells []CellValue,
	dimensions []string, sandboxName, changeset string) error {

	var err error
	if dimensions == nil {
		if dimensions, err = s.getDimensionNamesForWriting(ctx, cubeName); err != nil {
			return err
		}
	}
	url := rest.FormatURL("/Cubes('%s')/tm1.Update", cubeName)
	url = rest.AddURLParameters(url, sandboxParams(sandboxName, changeset))

	updates := make([]string, 0, len(cells))
	for _, cell := range cells {
		bindings := make([]string, 0, len(dimensions))
		for i, dimension := range dimensions {
			if i >= len(cell.Coordinates) {
				break
			}
			bindings = append(bindings, rest.FormatURL(
				"Dimensions('%s')/Hierarchies('%s')/Elements('%s')",
				dimension, dimension, cell.Coordinates[i]))
		}
		update, err := json.Marshal(map[string]interface{}{
			"Cells": []map[string]interface{}{{"Tuple@odata.bind": bindings}},
			"Value": cell.Value,
		})
		if err != nil {
			return err
		}
		updates = append(updates, string(update))
	}
	_, err = s.rest.POST(ctx, url, "["+strings.Join(updates, ",")+"]")
	return err
}

// Write dispatches a cell write to the most suitable mechanism
func (s *CellService) Write(ctx context.Context, cubeName string, cells []CellValue,
	options WriteOptions) error {

	if options.DeactivateTransactionLog {
		if err := s.DeactivateTransactionLog(ctx, cubeName); err != nil {
			return err
		}
	}
	var err error
	if options.UseTI {
		err = s.writeThroughUnboundProcess(ctx, cubeName, cells, options)
	} else {
		err = s.writeThroughCellset(ctx, cubeName, cells, options)
	}
	if options.ReactivateTransactionLog {
		if reactivateErr := s.ReactivateTransactionLog(ctx, cubeName); reactivateErr != nil && err == nil {
			err = reactivateErr
		}
	}
	return err
}

// writeThroughCellset builds an MDX addressing exactly the given cells and
// patches the resulting cellset
func (s *CellService) writeThroughCellset(ctx context.Context, cubeName string,
	cells []CellValue, options WriteOptions) error {

	dimensions := options.Dimensions
	var err error
	if dimensions == nil {
		if dimensions, err = s.getDimensionNamesForWriting(ctx, cubeName); err != nil {
			return err
		}
	}
	mdx, values := buildMDXAndValuesFromCells(cubeName, dimensions, cells)
	return s.WriteValuesThroughCellset(ctx, mdx, values, options.Increment,
		options.SandboxName, options.Changeset)
}

// buildMDXAndValuesFromCells renders a tuple-set MDX for the cell coordinates
func buildMDXAndValuesFromCells(cubeName string, dimensions []string,
	cells []CellValue) (string, []interface{}) {

	tuples := make([]string, 0, len(cells))
	values := make([]interface{}, 0, len(cells))
	for _, cell := range cells {
		members := make([]string, 0, len(dimensions))
		for i, dimension := range dimensions {
			if i >= len(cell.Coordinates) {
				break
			}
			members = append(members, fmt.Sprintf("[%s].[%s].[%s]",
				dimension, dimension, cell.Coordinates[i]))
		}
		tuples = append(tuples, "("+strings.Join(members, ",")+")")
		values = append(values, cell.Value)
	}
	mdx := fmt.Sprintf("SELECT {%s} ON 0 FROM [%s]", strings.Join(tuples, ","), cubeName)
	return mdx, values
}

// writeThroughUnboundProcess writes cells with CellPut statements in a
// transient unbound process
func (s *CellService) writeThroughUnboundProcess(ctx context.Context, cubeName string,
	cells []CellValue, options WriteOptions) error {

	statements := make([]string, 0, len(cells))
	for _, cell := range cells {
		quoted := make([]string, 0, len(cell.Coordinates))
		for _, element := range cell.Coordinates {
			quoted = append(quoted, "'"+strings.ReplaceAll(element, "'", "''")+"'")
		}
		function := "CellPutN"
		value := fmt.Sprintf("%v", cell.Value)
		if text, ok := cell.Value.(string); ok {
			function = "CellPutS"
			value = "'" + strings.ReplaceAll(text, "'", "''") + "'"
		} else if options.Increment {
			function = "CellIncrementN"
		}
		statements = append(statements, fmt.Sprintf("%s(%s,'%s',%s);",
			function, value, strings.ReplaceAll(cubeName, "'", "''"), strings.Join(quoted, ",")))
	}
	processes := NewProcessService(s.rest)
	result, err := processes.ExecuteTICode(ctx, statements, nil)
	if err != nil {
		return err
	}
	if !result.Successful() {
		return &rest.WriteFailureError{
			Statuses:      []string{result.Status},
			ErrorLogFiles: result.ErrorLogFiles(),
		}
	}
	return nil
}

// WriteAsync splits the cells into slices and writes them on a bounded worker
// pool. Failed slices are merged into one partial-failure error.
func (s *CellService) WriteAsync(ctx context.Context, cubeName string, cells []CellValue,
	options WriteOptions) error {

	sliceSize := options.SliceSize
	if sliceSize <= 0 {
		sliceSize = defaultWriteSliceSize
	}
	maxWorkers := options.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 8
	}

	var slices [][]CellValue
	for start := 0; start < len(cells); start += sliceSize {
		end := start + sliceSize
		if end > len(cells) {
			end = len(cells)
		}
		slices = append(slices, cells[start:end])
	}

	type sliceResult struct{ err error }
	results := make([]sliceResult, len(slices))
	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup
	for i, slice := range slices {
		wg.Add(1)
		go func(i int, slice []CellValue) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			results[i].err = s.Write(ctx, cubeName, slice, options)
		}(i, slice)
	}
	wg.Wait()

	var statuses, errorLogFiles []string
	failures := 0
	for _, result := range results {
		if result.err == nil {
			continue
		}
		failures++
		var writeFailure *rest.WriteFailureError
		var partialFailure *rest.WritePartialFailureError
		switch {
		case errors.As(result.err, &partialFailure):
			statuses = append(statuses, partialFailure.Statuses...)
			errorLogFiles = append(errorLogFiles, partialFailure.ErrorLogFiles...)
		case errors.As(result.err, &writeFailure):
			statuses = append(statuses, writeFailure.Statuses...)
			errorLogFiles = append(errorLogFiles, writeFailure.ErrorLogFiles...)
		default:
			statuses = append(statuses, result.err.Error())
		}
	}
	if failures == 0 {
		return nil
	}
	if failures == len(slices) {
		return &rest.WriteFailureError{Statuses: statuses, ErrorLogFiles: errorLogFiles}
	}
	return &rest.WritePartialFailureError{
		Statuses:      statuses,
		ErrorLogFiles: errorLogFiles,
		Attempts:      len(slices),
	}
}

// WriteValuesThroughCellset creates a cellset from the MDX and patches its
// cells in ordinal order
func (s *CellService) WriteValuesThroughCellset(ctx context.Context, mdx string,
	values []interface{}, increment bool, sandboxName, changeset string) error {

	cellsetID, err := s.CreateCellset(ctx, mdx, sandboxName)
	if err != nil {
		return err
	}
	defer s.DeleteCellset(ctx, cellsetID)

	if increment {
		current, err := s.extractCellsetValues(ctx, cellsetID, sandboxName)
		if err != nil {
			return err
		}
		merged := make([]interface{}, len(values))
		for i, value := range values {
			var sum float64
			if i < len(current) {
				if number, ok := current[i].(float64); ok {
					sum = number
				}
			}
			if number, ok := toFloat(value); ok {
				sum += number
			}
			merged[i] = sum
		}
		values = merged
	}
	return s.UpdateCellset(ctx, cellsetID, values, sandboxName, changeset)
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// UpdateCellset patches the cells of an existing cellset by ordinal
func (s *CellService) UpdateCellset(ctx context.Context, cellsetID string,
	values []interface{}, sandboxName, changeset string) error {

	url := rest.FormatURL("/Cellsets('%s')/Cells", cellsetID)
	url = rest.AddURLParameters(url, sandboxParams(sandboxName, changeset))
	updates := make([]map[string]interface{}, 0, len(values))
	for ordinal, value := range values {
		updates = append(updates, map[string]interface{}{"Ordinal": ordinal, "Value": value})
	}
	data, err := json.Marshal(updates)
	if err != nil {
		return err
	}
	_, err = s.rest.PATCH(ctx, url, string(data))
	return err
}

// CreateCellset executes the MDX and returns the cellset id
func (s *CellService) CreateCellset(ctx context.Context, mdx, sandboxName string) (string, error) {
	url := rest.AddURLParameters("/ExecuteMDX", sandboxParams(sandboxName, ""))
	data, err := json.Marshal(map[string]string{"MDX": mdx})
	if err != nil {
		return "", err
	}
	resp, err := s.rest.POST(ctx, url, string(data))
	if err != nil {
		return "", err
	}
	var payload struct {
		ID string `json:"ID"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", errors.Wrap(err, "decoding cellset id")
	}
	return payload.ID, nil
}

// CreateCellsetFromView executes a view and returns the cellset id
func (s *CellService) CreateCellsetFromView(ctx context.Context, cubeName, viewName string,
	private bool, sandboxName string) (string, error) {

	viewsSegment := "Views"
	if private {
		viewsSegment = "PrivateViews"
	}
	url := rest.FormatURL("/Cubes('%s')/%s('%s')/tm1.Execute", cubeName, viewsSegment, viewName)
	url = rest.AddURLParameters(url, sandboxParams(sandboxName, ""))
	resp, err := s.rest.POST(ctx, url, "")
	if err != nil {
		return "", err
	}
	var payload struct {
		ID string `json:"ID"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", errors.Wrap(err, "decoding cellset id")
	}
	return payload.ID, nil
}

// DeleteCellset releases a server-side cellset. A missing cellset is fine.
func (s *CellService) DeleteCellset(ctx context.Context, cellsetID string) {
	url := rest.FormatURL("/Cellsets('%s')", cellsetID)
	if _, err := s.rest.DELETE(ctx, url); err != nil && !rest.IsNotFound(err) {
		logrus.Debugf("Could not delete cellset '%s': %v\n", cellsetID, err)
	}
}

// ExtractCellset reads the axes and cells of a cellset
func (s *CellService) ExtractCellset(ctx context.Context, cellsetID string,
	options ExtractOptions) (*Cellset, error) {

	if options.DeleteCellset {
		defer s.DeleteCellset(ctx, cellsetID)
	}

	var cellFilters []string
	if options.SkipZeros {
		cellFilters = append(cellFilters, "Value ne 0 and Value ne null and Value ne ''")
	}
	if options.SkipConsolidated {
		cellFilters = append(cellFilters, "Consolidated eq false")
	}
	if options.SkipRuleDerived {
		cellFilters = append(cellFilters, "RuleDerived eq false")
	}
	cellsExpand := "Cells($select=Ordinal,Value,RuleDerived,Consolidated"
	if len(cellFilters) > 0 {
		cellsExpand += ";$filter=" + strings.Join(cellFilters, " and ")
	}
	if options.Top > 0 {
		cellsExpand += fmt.Sprintf(";$top=%d", options.Top)
	}
	if options.Skip > 0 {
		cellsExpand += fmt.Sprintf(";$skip=%d", options.Skip)
	}
	cellsExpand += ")"

	// UniqueName is always fetched, coordinates are reordered into the cube
	// dimension order by the dimension prefix of the unique name
	url := rest.FormatURL("/Cellsets('%s')", cellsetID) +
		"?$expand=Cube($select=Name;$expand=Dimensions($select=Name))," +
		"Axes($expand=Tuples($expand=Members($select=Name,UniqueName)))," +
		cellsExpand
	url = rest.AddURLParameters(url, sandboxParams(options.SandboxName, ""))

	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseCellset(cellsetID, resp.Body, options.ElementUniqueNames)
}

type rawCellset struct {
	Cube struct {
		Name       string `json:"Name"`
		Dimensions []struct {
			Name string `json:"Name"`
		} `json:"Dimensions"`
	} `json:"Cube"`
	Axes []struct {
		Ordinal int `json:"Ordinal"`
		Tuples  []struct {
			Members []struct {
				Name       string `json:"Name"`
				UniqueName string `json:"UniqueName"`
			} `json:"Members"`
		} `json:"Tuples"`
	} `json:"Axes"`
	Cells []struct {
		Ordinal      int         `json:"Ordinal"`
		Value        interface{} `json:"Value"`
		RuleDerived  bool        `json:"RuleDerived"`
		Consolidated bool        `json:"Consolidated"`
	} `json:"Cells"`
}

// axisMember is one tuple member, carrying both spellings of its name
type axisMember struct {
	name       string
	uniqueName string
}

// parseCellset maps cell ordinals back to axis coordinates, ordered by the
// dimension order of the cube rather than the axis order of the query
func parseCellset(cellsetID string, body []byte, uniqueNames bool) (*Cellset, error) {
	var raw rawCellset
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding cellset")
	}

	// members per axis, indexed by tuple ordinal
	axes := make([][][]axisMember, 0, len(raw.Axes))
	for _, axis := range raw.Axes {
		if len(axis.Tuples) == 0 {
			continue
		}
		tuples := make([][]axisMember, 0, len(axis.Tuples))
		for _, tuple := range axis.Tuples {
			members := make([]axisMember, 0, len(tuple.Members))
			for _, member := range tuple.Members {
				members = append(members, axisMember{name: member.Name, uniqueName: member.UniqueName})
			}
			tuples = append(tuples, members)
		}
		axes = append(axes, tuples)
	}

	cubeDimensions := make([]string, 0, len(raw.Cube.Dimensions))
	for _, dimension := range raw.Cube.Dimensions {
		cubeDimensions = append(cubeDimensions, dimension.Name)
	}

	cellset := &Cellset{ID: cellsetID, Cube: raw.Cube.Name}
	for _, cell := range raw.Cells {
		members := membersForOrdinal(axes, cell.Ordinal)
		cellset.Cells = append(cellset.Cells, Cell{
			Coordinates:  sortCoordinates(cubeDimensions, members, uniqueNames),
			Ordinal:      cell.Ordinal,
			Value:        cell.Value,
			RuleDerived:  cell.RuleDerived,
			Consolidated: cell.Consolidated,
		})
	}
	return cellset, nil
}

// membersForOrdinal resolves a cell ordinal into the tuple members of all
// axes. Ordinals enumerate the column axis fastest.
func membersForOrdinal(axes [][][]axisMember, ordinal int) []axisMember {
	var members []axisMember
	remainder := ordinal
	for _, axis := range axes {
		index := remainder % len(axis)
		remainder /= len(axis)
		members = append(members, axis[index]...)
	}
	return members
}

// sortCoordinates reorders the tuple members into the dimension order of the
// cube, matching each member by the dimension prefix of its unique name
func sortCoordinates(cubeDimensions []string, members []axisMember, uniqueNames bool) []string {
	coordinates := make([]string, 0, len(members))
	used := make([]bool, len(members))
	for _, dimension := range cubeDimensions {
		for i, member := range members {
			if used[i] {
				continue
			}
			if objects.NamesEqual(objects.DimensionNameFromUniqueName(member.uniqueName), dimension) {
				used[i] = true
				if uniqueNames {
					coordinates = append(coordinates, member.uniqueName)
				} else {
					coordinates = append(coordinates, member.name)
				}
				break
			}
		}
	}
	// members of dimensions the cube does not list, such as calculated ones,
	// keep their axis position at the end
	for i, member := range members {
		if used[i] {
			continue
		}
		if uniqueNames {
			coordinates = append(coordinates, member.uniqueName)
		} else {
			coordinates = append(coordinates, member.name)
		}
	}
	return coordinates
}

// ExecuteMDX runs the MDX and extracts the resulting cellset
func (s *CellService) ExecuteMDX(ctx context.Context, mdx string, options ExtractOptions) (*Cellset, error) {
	cellsetID, err := s.CreateCellset(ctx, mdx, options.SandboxName)
	if err != nil {
		return nil, err
	}
	options.DeleteCellset = true
	return s.ExtractCellset(ctx, cellsetID, options)
}

// ExecuteView runs a stored view and extracts the resulting cellset
func (s *CellService) ExecuteView(ctx context.Context, cubeName, viewName string,
	private bool, options ExtractOptions) (*Cellset, error) {

	cellsetID, err := s.CreateCellsetFromView(ctx, cubeName, viewName, private, options.SandboxName)
	if err != nil {
		return nil, err
	}
	options.DeleteCellset = true
	return s.ExtractCellset(ctx, cellsetID, options)
}

// extractCellsetValues reads only the values of a cellset
func (s *CellService) extractCellsetValues(ctx context.Context, cellsetID, sandboxName string) ([]interface{}, error) {
	url := rest.FormatURL("/Cellsets('%s')?$expand=Cells($select=Value)", cellsetID)
	url = rest.AddURLParameters(url, sandboxParams(sandboxName, ""))
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Cells []struct {
			Value interface{} `json:"Value"`
		} `json:"Cells"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding cellset values")
	}
	values := make([]interface{}, 0, len(payload.Cells))
	for _, cell := range payload.Cells {
		values = append(values, cell.Value)
	}
	return values, nil
}

// ExecuteMDXValues runs the MDX and returns the plain cell values
func (s *CellService) ExecuteMDXValues(ctx context.Context, mdx, sandboxName string) ([]interface{}, error) {
	cellsetID, err := s.CreateCellset(ctx, mdx, sandboxName)
	if err != nil {
		return nil, err
	}
	defer s.DeleteCellset(ctx, cellsetID)
	return s.extractCellsetValues(ctx, cellsetID, sandboxName)
}

// ExecuteViewValues runs a stored view and returns the plain cell values
func (s *CellService) ExecuteViewValues(ctx context.Context, cubeName, viewName string,
	private bool, sandboxName string) ([]interface{}, error) {

	cellsetID, err := s.CreateCellsetFromView(ctx, cubeName, viewName, private, sandboxName)
	if err != nil {
		return nil, err
	}
	defer s.DeleteCellset(ctx, cellsetID)
	return s.extractCellsetValues(ctx, cellsetID, sandboxName)
}

// ExecuteMDXCellCount returns the number of cells the MDX addresses
func (s *CellService) ExecuteMDXCellCount(ctx context.Context, mdx, sandboxName string) (int, error) {
	cellsetID, err := s.CreateCellset(ctx, mdx, sandboxName)
	if err != nil {
		return 0, err
	}
	defer s.DeleteCellset(ctx, cellsetID)
	url := rest.FormatURL("/Cellsets('%s')/Cells/$count", cellsetID)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(strings.TrimSpace(resp.Text()), "%d", &count); err != nil {
		return 0, errors.Wrap(err, "parsing cell count")
	}
	return count, nil
}

// GetValue reads one cell addressed by element coordinates
func (s *CellService) GetValue(ctx context.Context, cubeName string, elements []string,
	dimensions []string, sandboxName string) (interface{}, error) {

	var err error
	if dimensions == nil {
		if dimensions, err = s.getDimensionNamesForWriting(ctx, cubeName); err != nil {
			return nil, err
		}
	}
	mdx, _ := buildMDXAndValuesFromCells(cubeName, dimensions,
		[]CellValue{{Coordinates: elements}})
	values, err := s.ExecuteMDXValues(ctx, mdx, sandboxName)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, rest.NewError("no cell returned for the given coordinates")
	}
	return values[0], nil
}

// GetValueString reads one cell and renders its value as string
func (s *CellService) GetValueString(ctx context.Context, cubeName string, elements []string,
	dimensions []string) (string, error) {

	value, err := s.GetValue(ctx, cubeName, elements, dimensions, "")
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", value), nil
}

// BeginChangeset opens a changeset for grouped cell writes
func (s *CellService) BeginChangeset(ctx context.Context) (string, error) {
	resp, err := s.rest.POST(ctx, "/BeginChangeSet", "")
	if err != nil {
		return "", err
	}
	var payload struct {
		Value string `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", errors.Wrap(err, "decoding changeset id")
	}
	return payload.Value, nil
}

// EndChangeset closes a changeset
func (s *CellService) EndChangeset(ctx context.Context, changeset string) error {
	data, err := json.Marshal(map[string]string{"ChangeSetID": changeset})
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/EndChangeSet", string(data))
	return err
}

// UndoChangeset rolls a changeset back
func (s *CellService) UndoChangeset(ctx context.Context, changeset string) error {
	data, err := json.Marshal(map[string]string{"ChangeSetID": changeset})
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/UndoChangeSet", string(data))
	return err
}

// DeactivateTransactionLog turns transaction logging off for the cube
func (s *CellService) DeactivateTransactionLog(ctx context.Context, cubeName string) error {
	return s.WriteValue(ctx, "NO", "}CubeProperties",
		[]string{cubeName, "Logging"}, []string{"}Cubes", "}CubeProperties"}, "")
}

// ReactivateTransactionLog turns transaction logging back on for the cube
func (s *CellService) ReactivateTransactionLog(ctx context.Context, cubeName string) error {
	return s.WriteValue(ctx, "YES", "}CubeProperties",
		[]string{cubeName, "Logging"}, []string{"}Cubes", "}CubeProperties"}, "")
}
