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
	"github.com/pkg/errors"
)

// ApplicationService manages the folder tree under Contents('Applications')
type ApplicationService struct {
	ObjectService
}

// NewApplicationService creates the service on a shared session
func NewApplicationService(client *rest.Client) *ApplicationService {
	return &ApplicationService{ObjectService: NewObjectService(client)}
}

// contentsURL renders the path a/b/c into nested Contents segments
func contentsURL(path string, private bool) string {
	url := "/Contents('Applications')"
	if path != "" {
		for _, folder := range strings.Split(path, "/") {
			url += rest.FormatURL("/Contents('%s')", folder)
		}
	}
	if private {
		return url + "/PrivateContents"
	}
	return url + "/Contents"
}

// entryName appends the pre-v12 type suffix to an entry name
func (s *ApplicationService) entryName(name string, applicationType objects.ApplicationType) string {
	if applicationType == objects.ApplicationTypeFolder ||
		rest.VerifyVersion("12", s.rest.Version()) {
		return name
	}
	return name + applicationType.Suffix()
}

// Get reads an entry and resolves its reference target
func (s *ApplicationService) Get(ctx context.Context, path string,
	applicationType objects.ApplicationType, name string, private bool) (*objects.Application, error) {

	// the entry suffix depends on the server version known after login
	if err := s.rest.Connect(ctx); err != nil {
		return nil, err
	}
	baseURL := contentsURL(path, private) +
		rest.FormatURL("('%s')", s.entryName(name, applicationType))
	application := &objects.Application{Path: path, Name: name, Type: applicationType, Private: private}

	switch applicationType {
	case objects.ApplicationTypeCube:
		resp, err := s.rest.GET(ctx, baseURL+"?$expand=Cube($select=Name)")
		if err != nil {
			return nil, err
		}
		var payload struct {
			Cube struct {
				Name string `json:"Name"`
			} `json:"Cube"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding cube reference")
		}
		application.CubeName = payload.Cube.Name

	case objects.ApplicationTypeChore:
		resp, err := s.rest.GET(ctx, baseURL+"?$expand=Chore($select=Name)")
		if err != nil {
			return nil, err
		}
		var payload struct {
			Chore struct {
				Name string `json:"Name"`
			} `json:"Chore"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding chore reference")
		}
		application.ChoreName = payload.Chore.Name

	case objects.ApplicationTypeDimension:
		resp, err := s.rest.GET(ctx, baseURL+"?$expand=Dimension($select=Name)")
		if err != nil {
			return nil, err
		}
		var payload struct {
			Dimension struct {
				Name string `json:"Name"`
			} `json:"Dimension"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding dimension reference")
		}
		application.DimensionName = payload.Dimension.Name

	case objects.ApplicationTypeProcess:
		resp, err := s.rest.GET(ctx, baseURL+"?$expand=Process($select=Name)")
		if err != nil {
			return nil, err
		}
		var payload struct {
			Process struct {
				Name string `json:"Name"`
			} `json:"Process"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding process reference")
		}
		application.ProcessName = payload.Process.Name

	case objects.ApplicationTypeSubset:
		resp, err := s.rest.GET(ctx, baseURL+
			"?$expand=Subset($select=Name;$expand=Hierarchy($select=Name;$expand=Dimension($select=Name)))")
		if err != nil {
			return nil, err
		}
		var payload struct {
			Subset struct {
				Name      string `json:"Name"`
				Hierarchy struct {
					Name      string `json:"Name"`
					Dimension struct {
						Name string `json:"Name"`
					} `json:"Dimension"`
				} `json:"Hierarchy"`
			} `json:"Subset"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding subset reference")
		}
		application.SubsetName = payload.Subset.Name
		application.HierarchyName = payload.Subset.Hierarchy.Name
		application.DimensionName = payload.Subset.Hierarchy.Dimension.Name

	case objects.ApplicationTypeView:
		resp, err := s.rest.GET(ctx, baseURL+"?$expand=View($select=Name;$expand=Cube($select=Name))")
		if err != nil {
			return nil, err
		}
		var payload struct {
			View struct {
				Name string `json:"Name"`
				Cube struct {
					Name string `json:"Name"`
				} `json:"Cube"`
			} `json:"View"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding view reference")
		}
		application.ViewName = payload.View.Name
		application.CubeName = payload.View.Cube.Name

	case objects.ApplicationTypeLink:
		resp, err := s.rest.GET(ctx, baseURL+"?$expand=*")
		if err != nil {
			return nil, err
		}
		var payload struct {
			URL string `json:"URL"`
		}
		if err := resp.JSON(&payload); err != nil {
			return nil, errors.Wrap(err, "decoding link entry")
		}
		application.URL = payload.URL

	default:
		// folders and documents carry no reference target
		if _, err := s.rest.GET(ctx, baseURL); err != nil {
			return nil, err
		}
	}
	return application, nil
}

// Rename moves an entry to a new name within its folder
func (s *ApplicationService) Rename(ctx context.Context, path string,
	applicationType objects.ApplicationType, name, newName string, private bool) error {

	if err := s.rest.Connect(ctx); err != nil {
		return err
	}
	url := contentsURL(path, private) +
		rest.FormatURL("('%s')/tm1.Move", s.entryName(name, applicationType))
	data, err := json.Marshal(map[string]string{"Name": newName})
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}

// GetNames lists the entries of a folder
func (s *ApplicationService) GetNames(ctx context.Context, path string, private bool) ([]string, error) {
	url := contentsURL(path, private) + "?$select=Name"
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Create stores a new entry in the folder tree
func (s *ApplicationService) Create(ctx context.Context, application *objects.Application,
	private bool) error {

	body, err := application.Body()
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, contentsURL(application.Path, private), body)
	return err
}

// Delete removes an entry from the folder tree
func (s *ApplicationService) Delete(ctx context.Context, path, name string, private bool) error {
	url := contentsURL(path, private) + rest.FormatURL("('%s')", name)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// ExistsByName probes for an entry
func (s *ApplicationService) ExistsByName(ctx context.Context, path, name string, private bool) (bool, error) {
	url := contentsURL(path, private) + rest.FormatURL("('%s')", name)
	return s.Exists(ctx, url)
}

// GetLinkURL reads the target of a link entry
func (s *ApplicationService) GetLinkURL(ctx context.Context, path, name string, private bool) (string, error) {
	url := contentsURL(path, private) + rest.FormatURL("('%s')/URL/$value", name)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
