/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
)

const nativeViewExpand = "?$expand=" +
	"tm1.NativeView/Columns/Subset($expand=Hierarchy($select=Name;$expand=Dimension($select=Name))," +
	"Elements($select=Name);$select=Name,Alias,Expression)," +
	"tm1.NativeView/Rows/Subset($expand=Hierarchy($select=Name;$expand=Dimension($select=Name))," +
	"Elements($select=Name);$select=Name,Alias,Expression)," +
	"tm1.NativeView/Titles/Subset($expand=Hierarchy($select=Name;$expand=Dimension($select=Name))," +
	"Elements($select=Name);$select=Name,Alias,Expression)," +
	"tm1.NativeView/Titles/Selected($select=Name)"

// ViewService manages public and private cube views
type ViewService struct {
	ObjectService
}

// NewViewService creates the service on a shared session
func NewViewService(client *rest.Client) *ViewService {
	return &ViewService{ObjectService: NewObjectService(client)}
}

func viewsSegment(private bool) string {
	if private {
		return "PrivateViews"
	}
	return "Views"
}

func viewURL(cubeName, viewName string, private bool) string {
	return rest.FormatURL("/Cubes('%s')/"+viewsSegment(private)+"('%s')", cubeName, viewName)
}

// Create stores a new view
func (s *ViewService) Create(ctx context.Context, view objects.View, private bool) error {
	body, err := view.Body()
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Cubes('%s')/", view.CubeName()) + viewsSegment(private)
	_, err = s.rest.POST(ctx, url, body)
	return err
}

// Get reads a view, returning either a NativeView or an MDXView
func (s *ViewService) Get(ctx context.Context, cubeName, viewName string, private bool) (objects.View, error) {
	url := viewURL(cubeName, viewName, private)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var discriminator struct {
		ODataType string `json:"@odata.type"`
	}
	if err := json.Unmarshal(resp.Body, &discriminator); err != nil {
		return nil, err
	}
	if strings.Contains(discriminator.ODataType, "MDXView") {
		return objects.MDXViewFromJSON(cubeName, resp.Body)
	}
	return s.GetNativeView(ctx, cubeName, viewName, private)
}

// GetNativeView reads a native view with all axis subsets expanded
func (s *ViewService) GetNativeView(ctx context.Context, cubeName, viewName string,
	private bool) (*objects.NativeView, error) {

	url := viewURL(cubeName, viewName, private) + nativeViewExpand
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.NativeViewFromJSON(cubeName, resp.Body)
}

// GetMDXView reads an MDX view
func (s *ViewService) GetMDXView(ctx context.Context, cubeName, viewName string,
	private bool) (*objects.MDXView, error) {

	url := viewURL(cubeName, viewName, private)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.MDXViewFromJSON(cubeName, resp.Body)
}

// GetAll reads all views of a cube, returning the private and the public
// ones. Skipping the elements is faster on views with large subsets.
func (s *ViewService) GetAll(ctx context.Context, cubeName string,
	includeElements bool) (privateViews, publicViews []objects.View, err error) {

	expand := strings.TrimPrefix(nativeViewExpand, "?$expand=")
	if !includeElements {
		expand = strings.ReplaceAll(expand, "Elements($select=Name)", "Elements($select=Name;$top=0)")
	}
	for _, segment := range []string{"PrivateViews", "Views"} {
		url := rest.FormatURL("/Cubes('%s')/", cubeName) + segment + "?$expand=" + expand
		resp, err := s.rest.GET(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		entries, err := rawValueList(resp)
		if err != nil {
			return nil, nil, err
		}
		for _, entry := range entries {
			var discriminator struct {
				ODataType string `json:"@odata.type"`
			}
			if err := json.Unmarshal(entry, &discriminator); err != nil {
				return nil, nil, err
			}
			var view objects.View
			if strings.Contains(discriminator.ODataType, "MDXView") {
				view, err = objects.MDXViewFromJSON(cubeName, entry)
			} else {
				view, err = objects.NativeViewFromJSON(cubeName, entry)
			}
			if err != nil {
				return nil, nil, err
			}
			if segment == "PrivateViews" {
				privateViews = append(privateViews, view)
			} else {
				publicViews = append(publicViews, view)
			}
		}
	}
	return privateViews, publicViews, nil
}

// SearchSubsetInNativeViews lists the native views holding the subset on any
// axis, across all cubes unless one is named
func (s *ViewService) SearchSubsetInNativeViews(ctx context.Context, dimensionName, subsetName,
	cubeName string, includeElements bool) (privateViews, publicViews []*objects.NativeView, err error) {

	expand := strings.TrimPrefix(nativeViewExpand, "?$expand=")
	if !includeElements {
		expand = strings.ReplaceAll(expand, "Elements($select=Name)", "Elements($select=Name;$top=0)")
	}
	baseURL := "/Cubes?$select=Name"
	if cubeName != "" {
		baseURL += rest.FormatURL("&$filter=replace(tolower(Name),' ','') eq '%s'",
			objects.NormalizeName(cubeName))
	}
	for _, segment := range []string{"PrivateViews", "Views"} {
		axisFilter := rest.FormatURL(
			"(tm1.NativeView/Rows/any(r: replace(tolower(r/Subset/Name),' ','') eq '%s' "+
				"and replace(tolower(r/Subset/Hierarchy/Dimension/Name),' ','') eq '%s')) or "+
				"(tm1.NativeView/Columns/any(c: replace(tolower(c/Subset/Name),' ','') eq '%s' "+
				"and replace(tolower(c/Subset/Hierarchy/Dimension/Name),' ','') eq '%s')) or "+
				"(tm1.NativeView/Titles/any(t: replace(tolower(t/Subset/Name),' ','') eq '%s' "+
				"and replace(tolower(t/Subset/Hierarchy/Dimension/Name),' ','') eq '%s'))",
			objects.NormalizeName(subsetName), objects.NormalizeName(dimensionName),
			objects.NormalizeName(subsetName), objects.NormalizeName(dimensionName),
			objects.NormalizeName(subsetName), objects.NormalizeName(dimensionName))
		url := baseURL + "&$expand=" + segment +
			"($filter=isof(tm1.NativeView) and (" + axisFilter + ");$expand=" + expand + ")"

		resp, err := s.rest.GET(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		var payload struct {
			Value []struct {
				Name         string            `json:"Name"`
				PrivateViews []json.RawMessage `json:"PrivateViews"`
				Views        []json.RawMessage `json:"Views"`
			} `json:"value"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, nil, err
		}
		for _, cube := range payload.Value {
			entries := cube.Views
			if segment == "PrivateViews" {
				entries = cube.PrivateViews
			}
			for _, entry := range entries {
				view, err := objects.NativeViewFromJSON(cube.Name, entry)
				if err != nil {
					return nil, nil, err
				}
				if segment == "PrivateViews" {
					privateViews = append(privateViews, view)
				} else {
					publicViews = append(publicViews, view)
				}
			}
		}
	}
	return privateViews, publicViews, nil
}

// GetAllNames lists the view names of a cube
func (s *ViewService) GetAllNames(ctx context.Context, cubeName string, private bool) ([]string, error) {
	url := rest.FormatURL("/Cubes('%s')/", cubeName) + viewsSegment(private) + "?$select=Name"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Update replaces an existing view
func (s *ViewService) Update(ctx context.Context, view objects.View, private bool) error {
	body, err := view.Body()
	if err != nil {
		return err
	}
	url := viewURL(view.CubeName(), view.ViewName(), private)
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// UpdateOrCreate updates the view if it exists, creates it otherwise
func (s *ViewService) UpdateOrCreate(ctx context.Context, view objects.View, private bool) error {
	exists, err := s.ExistsByName(ctx, view.CubeName(), view.ViewName(), private)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, view, private)
	}
	return s.Create(ctx, view, private)
}

// Delete removes a view
func (s *ViewService) Delete(ctx context.Context, cubeName, viewName string, private bool) error {
	_, err := s.rest.DELETE(ctx, viewURL(cubeName, viewName, private))
	return err
}

// ExistsByName probes for a view
func (s *ViewService) ExistsByName(ctx context.Context, cubeName, viewName string, private bool) (bool, error) {
	return s.Exists(ctx, viewURL(cubeName, viewName, private))
}
