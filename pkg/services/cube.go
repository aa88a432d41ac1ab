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
)

const sandboxDimensionName = "Sandboxes"

// CubeService manages server-side cubes
type CubeService struct {
	ObjectService
	cells *CellService
}

// NewCubeService creates the service on a shared session
func NewCubeService(client *rest.Client) *CubeService {
	return &CubeService{
		ObjectService: NewObjectService(client),
		cells:         NewCellService(client),
	}
}

// Create registers the cube on the server
func (s *CubeService) Create(ctx context.Context, cube *objects.Cube) error {
	body, err := cube.Body()
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/Cubes", body)
	return err
}

// Get reads a cube with its dimensions and rules. The sandbox dimension is
// dropped from the dimension list, matching how the cube was created.
func (s *CubeService) Get(ctx context.Context, cubeName string) (*objects.Cube, error) {
	url := rest.FormatURL("/Cubes('%s')?$expand=Dimensions($select=Name)", cubeName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	cube, err := objects.CubeFromJSON(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "decoding cube")
	}
	dimensions := make([]string, 0, len(cube.Dimensions))
	for _, dimension := range cube.Dimensions {
		if objects.NamesEqual(dimension, sandboxDimensionName) {
			continue
		}
		dimensions = append(dimensions, dimension)
	}
	cube.Dimensions = dimensions
	return cube, nil
}

// GetAll reads every cube including control cubes
func (s *CubeService) GetAll(ctx context.Context) ([]*objects.Cube, error) {
	return s.getCubes(ctx, "/Cubes?$expand=Dimensions($select=Name)")
}

// GetModelCubes reads all model cubes
func (s *CubeService) GetModelCubes(ctx context.Context) ([]*objects.Cube, error) {
	return s.getCubes(ctx, "/ModelCubes()?$expand=Dimensions($select=Name)")
}

// GetControlCubes reads all control cubes
func (s *CubeService) GetControlCubes(ctx context.Context) ([]*objects.Cube, error) {
	return s.getCubes(ctx, "/ControlCubes()?$expand=Dimensions($select=Name)")
}

func (s *CubeService) getCubes(ctx context.Context, url string) ([]*objects.Cube, error) {
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	cubes := make([]*objects.Cube, 0, len(entries))
	for _, entry := range entries {
		cube, err := objects.CubeFromJSON(entry)
		if err != nil {
			return nil, errors.Wrap(err, "decoding cube")
		}
		cubes = append(cubes, cube)
	}
	return cubes, nil
}

// GetAllNames lists cube names, optionally without control cubes
func (s *CubeService) GetAllNames(ctx context.Context, skipControlCubes bool) ([]string, error) {
	url := "/Cubes?$select=Name"
	if skipControlCubes {
		url = "/ModelCubes()?$select=Name"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetNumberOfCubes counts cubes, optionally without control cubes
func (s *CubeService) GetNumberOfCubes(ctx context.Context, skipControlCubes bool) (int, error) {
	url := "/Cubes/$count"
	if skipControlCubes {
		url = "/ModelCubes()?$select=Name&$top=0&$count=true"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return 0, err
	}
	if skipControlCubes {
		var payload struct {
			Count int `json:"@odata.count"`
		}
		if err := resp.JSON(&payload); err != nil {
			return 0, errors.Wrap(err, "decoding cube count")
		}
		return payload.Count, nil
	}
	var count int
	if _, err := fmt.Sscanf(strings.TrimSpace(resp.Text()), "%d", &count); err != nil {
		return 0, errors.Wrap(err, "parsing cube count")
	}
	return count, nil
}

// GetDimensionNames reads the dimension order of a cube
func (s *CubeService) GetDimensionNames(ctx context.Context, cubeName string) ([]string, error) {
	url := rest.FormatURL("/Cubes('%s')/Dimensions?$select=Name", cubeName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Update rewrites rules of an existing cube
func (s *CubeService) Update(ctx context.Context, cube *objects.Cube) error {
	url := rest.FormatURL("/Cubes('%s')", cube.Name)
	body := map[string]string{}
	if cube.Rules != nil {
		body["Rules"] = cube.Rules.Text
	} else {
		body["Rules"] = ""
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	_, err = s.rest.PATCH(ctx, url, string(data))
	return err
}

// UpdateOrCreate updates the cube when it exists, creates it otherwise
func (s *CubeService) UpdateOrCreate(ctx context.Context, cube *objects.Cube) error {
	exists, err := s.ExistsByName(ctx, cube.Name)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, cube)
	}
	return s.Create(ctx, cube)
}

// Delete removes the cube
func (s *CubeService) Delete(ctx context.Context, cubeName string) error {
	_, err := s.rest.DELETE(ctx, rest.FormatURL("/Cubes('%s')", cubeName))
	return err
}

// ExistsByName probes for the cube
func (s *CubeService) ExistsByName(ctx context.Context, cubeName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Cubes('%s')", cubeName))
}

// CheckRules validates the rules of a cube and returns the error entries
func (s *CubeService) CheckRules(ctx context.Context, cubeName string) ([]RuleSyntaxError, error) {
	url := rest.FormatURL("/Cubes('%s')/tm1.CheckRules", cubeName)
	resp, err := s.rest.POST(ctx, url, "")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []RuleSyntaxError `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding rule check result")
	}
	return payload.Value, nil
}

// RuleSyntaxError is one finding of a rules check
type RuleSyntaxError struct {
	LineNumber int    `json:"LineNumber"`
	Message    string `json:"Message"`
}

// SearchForDimension lists cubes that contain the dimension
func (s *CubeService) SearchForDimension(ctx context.Context, dimensionName string, skipControlCubes bool) ([]string, error) {
	base := "/Cubes"
	if skipControlCubes {
		base = "/ModelCubes()"
	}
	url := rest.FormatURL(
		"%s?$select=Name&$filter=Dimensions/any(d: replace(tolower(d/Name), ' ', '') eq '%s')",
		base, objects.NormalizeName(dimensionName))
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// SearchForDimensionSubstring maps cubes to their dimensions matching the substring
func (s *CubeService) SearchForDimensionSubstring(ctx context.Context, substring string, skipControlCubes bool) (map[string][]string, error) {
	base := "/Cubes"
	if skipControlCubes {
		base = "/ModelCubes()"
	}
	url := rest.FormatURL(
		"%s?$select=Name&$expand=Dimensions($select=Name;$filter=contains(tolower(Name),'%s'))",
		base, strings.ToLower(substring))
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []struct {
			Name       string `json:"Name"`
			Dimensions []struct {
				Name string `json:"Name"`
			} `json:"Dimensions"`
		} `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding dimension search")
	}
	result := make(map[string][]string)
	for _, cube := range payload.Value {
		if len(cube.Dimensions) == 0 {
			continue
		}
		names := make([]string, 0, len(cube.Dimensions))
		for _, dimension := range cube.Dimensions {
			names = append(names, dimension.Name)
		}
		result[cube.Name] = names
	}
	return result, nil
}

// SearchForRuleSubstring lists cubes whose rules contain the substring
func (s *CubeService) SearchForRuleSubstring(ctx context.Context, substring string, skipControlCubes, caseInsensitive bool) ([]*objects.Cube, error) {
	base := "/Cubes"
	if skipControlCubes {
		base = "/ModelCubes()"
	}
	needle := strings.ReplaceAll(substring, "'", "''")
	filter := fmt.Sprintf("Rules ne null and contains(Rules,'%s')", needle)
	if caseInsensitive {
		filter = fmt.Sprintf("Rules ne null and contains(tolower(Rules),'%s')", strings.ToLower(needle))
	}
	url := fmt.Sprintf("%s?$select=Name,Rules&$expand=Dimensions($select=Name)&$filter=%s", base, filter)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	cubes := make([]*objects.Cube, 0, len(entries))
	for _, entry := range entries {
		cube, err := objects.CubeFromJSON(entry)
		if err != nil {
			return nil, errors.Wrap(err, "decoding cube")
		}
		cubes = append(cubes, cube)
	}
	return cubes, nil
}

// GetLastDataUpdate reads the timestamp of the last data change
func (s *CubeService) GetLastDataUpdate(ctx context.Context, cubeName string) (string, error) {
	url := rest.FormatURL("/Cubes('%s')/LastDataUpdate/$value", cubeName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// GetStorageDimensionOrder reads the in-memory dimension order of the cube
func (s *CubeService) GetStorageDimensionOrder(ctx context.Context, cubeName string) ([]string, error) {
	if err := s.rest.RequireVersion("GetStorageDimensionOrder", "11.4"); err != nil {
		return nil, err
	}
	url := rest.FormatURL("/Cubes('%s')/tm1.DimensionsStorageOrder()?$select=Name", cubeName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// UpdateStorageDimensionOrder rewrites the in-memory dimension order and
// returns the reported memory saving in percent
func (s *CubeService) UpdateStorageDimensionOrder(ctx context.Context, cubeName string, dimensionNames []string) (float64, error) {
	if err := s.rest.RequireVersion("UpdateStorageDimensionOrder", "11.4"); err != nil {
		return 0, err
	}
	bindings := make([]string, 0, len(dimensionNames))
	for _, dimension := range dimensionNames {
		bindings = append(bindings, rest.FormatURL("Dimensions('%s')", dimension))
	}
	data, err := json.Marshal(map[string]interface{}{"Dimensions@odata.bind": bindings})
	if err != nil {
		return 0, err
	}
	url := rest.FormatURL("/Cubes('%s')/tm1.ReorderDimensions", cubeName)
	resp, err := s.rest.POST(ctx, url, string(data))
	if err != nil {
		return 0, err
	}
	var payload struct {
		Value float64 `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return 0, errors.Wrap(err, "decoding reorder result")
	}
	return payload.Value, nil
}

// Load forces the cube into memory
func (s *CubeService) Load(ctx context.Context, cubeName string) error {
	if err := s.rest.RequireVersion("Load", "11.6"); err != nil {
		return err
	}
	_, err := s.rest.POST(ctx, rest.FormatURL("/Cubes('%s')/tm1.Load", cubeName), "")
	return err
}

// Unload evicts the cube from memory
func (s *CubeService) Unload(ctx context.Context, cubeName string) error {
	if err := s.rest.RequireVersion("Unload", "11.6"); err != nil {
		return err
	}
	_, err := s.rest.POST(ctx, rest.FormatURL("/Cubes('%s')/tm1.Unload", cubeName), "")
	return err
}

// Lock prevents changes to the cube
func (s *CubeService) Lock(ctx context.Context, cubeName string) error {
	_, err := s.rest.POST(ctx, rest.FormatURL("/Cubes('%s')/tm1.Lock", cubeName), "")
	return err
}

// Unlock allows changes to the cube again
func (s *CubeService) Unlock(ctx context.Context, cubeName string) error {
	_, err := s.rest.POST(ctx, rest.FormatURL("/Cubes('%s')/tm1.Unlock", cubeName), "")
	return err
}

// CubeSaveData persists the dirty in-memory changes of the cube
func (s *CubeService) CubeSaveData(ctx context.Context, cubeName string) error {
	ti := fmt.Sprintf("CubeSaveData('%s');", strings.ReplaceAll(cubeName, "'", "''"))
	processes := NewProcessService(s.rest)
	_, err := processes.ExecuteTICode(ctx, []string{ti}, nil)
	return err
}

// GetVMM reads the view maximum memory threshold of the cube
func (s *CubeService) GetVMM(ctx context.Context, cubeName string) (string, error) {
	return s.cells.GetValueString(ctx, "}CubeProperties", []string{cubeName, "VMM"}, nil)
}

// SetVMM writes the view maximum memory threshold of the cube
func (s *CubeService) SetVMM(ctx context.Context, cubeName, value string) error {
	if err := s.rest.RequireVersion("SetVMM", "11.8.20"); err != nil {
		return err
	}
	return s.cells.WriteValue(ctx, value, "}CubeProperties", []string{cubeName, "VMM"}, nil, "")
}

// GetVMT reads the view minimum time threshold of the cube
func (s *CubeService) GetVMT(ctx context.Context, cubeName string) (string, error) {
	return s.cells.GetValueString(ctx, "}CubeProperties", []string{cubeName, "VMT"}, nil)
}

// SetVMT writes the view minimum time threshold of the cube
func (s *CubeService) SetVMT(ctx context.Context, cubeName, value string) error {
	if err := s.rest.RequireVersion("SetVMT", "11.8.20"); err != nil {
		return err
	}
	return s.cells.WriteValue(ctx, value, "}CubeProperties", []string{cubeName, "VMT"}, nil, "")
}
