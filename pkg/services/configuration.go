/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"encoding/json"

	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/pkg/errors"
)

// ConfigurationService reads and writes the server configuration
type ConfigurationService struct {
	ObjectService
}

// NewConfigurationService creates the service on a shared session
func NewConfigurationService(client *rest.Client) *ConfigurationService {
	return &ConfigurationService{ObjectService: NewObjectService(client)}
}

// GetAll reads the effective configuration document
func (s *ConfigurationService) GetAll(ctx context.Context) (map[string]interface{}, error) {
	resp, err := s.rest.GET(ctx, "/Configuration")
	if err != nil {
		return nil, err
	}
	var config map[string]interface{}
	if err := resp.JSON(&config); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	delete(config, "@odata.context")
	return config, nil
}

// GetServerName returns the configured server name
func (s *ConfigurationService) GetServerName(ctx context.Context) (string, error) {
	resp, err := s.rest.GET(ctx, "/Configuration/ServerName/$value")
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GetProductVersion returns the full server version string
func (s *ConfigurationService) GetProductVersion(ctx context.Context) (string, error) {
	resp, err := s.rest.GET(ctx, "/Configuration/ProductVersion/$value")
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GetAdminHost returns the admin host the server registers with
func (s *ConfigurationService) GetAdminHost(ctx context.Context) (string, error) {
	resp, err := s.rest.GET(ctx, "/Configuration/AdminHost/$value")
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GetDataDirectory returns the data directory of the server
func (s *ConfigurationService) GetDataDirectory(ctx context.Context) (string, error) {
	resp, err := s.rest.GET(ctx, "/Configuration/DataBaseDirectory/$value")
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GetStatic reads the static configuration, the part that only changes with
// a restart. Requires OperationsAdmin permissions.
func (s *ConfigurationService) GetStatic(ctx context.Context) (map[string]interface{}, error) {
	if err := s.rest.RequireOpsAdmin(ctx, "GetStatic"); err != nil {
		return nil, err
	}
	resp, err := s.rest.GET(ctx, "/StaticConfiguration")
	if err != nil {
		return nil, err
	}
	var config map[string]interface{}
	if err := resp.JSON(&config); err != nil {
		return nil, errors.Wrap(err, "decoding static configuration")
	}
	delete(config, "@odata.context")
	return config, nil
}

// GetActive reads the live configuration document
func (s *ConfigurationService) GetActive(ctx context.Context) (map[string]interface{}, error) {
	if err := s.rest.RequireOpsAdmin(ctx, "GetActive"); err != nil {
		return nil, err
	}
	resp, err := s.rest.GET(ctx, "/ActiveConfiguration")
	if err != nil {
		return nil, err
	}
	var config map[string]interface{}
	if err := resp.JSON(&config); err != nil {
		return nil, errors.Wrap(err, "decoding active configuration")
	}
	delete(config, "@odata.context")
	return config, nil
}

// UpdateStatic patches the static configuration. Most entries only take
// effect after a restart.
func (s *ConfigurationService) UpdateStatic(ctx context.Context, changes map[string]interface{}) error {
	if err := s.rest.RequireOpsAdmin(ctx, "UpdateStatic"); err != nil {
		return err
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return err
	}
	_, err = s.rest.PATCH(ctx, "/StaticConfiguration", string(data))
	return err
}
