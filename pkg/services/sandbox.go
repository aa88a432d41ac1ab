/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"encoding/json"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
)

// SandboxService manages the private workspaces of the session user
type SandboxService struct {
	ObjectService
}

// NewSandboxService creates the service on a shared session
func NewSandboxService(client *rest.Client) *SandboxService {
	return &SandboxService{ObjectService: NewObjectService(client)}
}

// Get reads a sandbox
func (s *SandboxService) Get(ctx context.Context, sandboxName string) (*objects.Sandbox, error) {
	url := rest.FormatURL("/Sandboxes('%s')", sandboxName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.SandboxFromJSON(resp.Body)
}

// GetAll reads all sandboxes of the session user
func (s *SandboxService) GetAll(ctx context.Context) ([]*objects.Sandbox, error) {
	resp, err := s.rest.GET(ctx,
		"/Sandboxes?$select=Name,IncludeInSandboxDimension,IsActive,IsQueued,IsLoaded")
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	sandboxes := make([]*objects.Sandbox, 0, len(entries))
	for _, entry := range entries {
		sandbox, err := objects.SandboxFromJSON(entry)
		if err != nil {
			return nil, err
		}
		sandboxes = append(sandboxes, sandbox)
	}
	return sandboxes, nil
}

// GetAllNames lists the sandbox names
func (s *SandboxService) GetAllNames(ctx context.Context) ([]string, error) {
	resp, err := s.rest.GET(ctx, "/Sandboxes?$select=Name")
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Create stores a new sandbox
func (s *SandboxService) Create(ctx context.Context, sandbox *objects.Sandbox) error {
	body, err := sandbox.Body()
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/Sandboxes", body)
	return err
}

// Update renames or reconfigures a sandbox
func (s *SandboxService) Update(ctx context.Context, sandbox *objects.Sandbox) error {
	body, err := sandbox.Body()
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Sandboxes('%s')", sandbox.Name)
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// Delete removes a sandbox and discards its changes
func (s *SandboxService) Delete(ctx context.Context, sandboxName string) error {
	url := rest.FormatURL("/Sandboxes('%s')", sandboxName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// ExistsByName probes for a sandbox
func (s *SandboxService) ExistsByName(ctx context.Context, sandboxName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Sandboxes('%s')", sandboxName))
}

// Publish commits the sandbox changes into base
func (s *SandboxService) Publish(ctx context.Context, sandboxName string) error {
	url := rest.FormatURL("/Sandboxes('%s')/tm1.Publish", sandboxName)
	_, err := s.rest.POST(ctx, url, "")
	return err
}

// Reset discards the changes of the sandbox while keeping it
func (s *SandboxService) Reset(ctx context.Context, sandboxName string) error {
	url := rest.FormatURL("/Sandboxes('%s')/tm1.DiscardChanges", sandboxName)
	_, err := s.rest.POST(ctx, url, "")
	return err
}

// Merge applies the changes of one sandbox onto another
func (s *SandboxService) Merge(ctx context.Context, sourceSandboxName, targetSandboxName string,
	cleanAfter bool) error {

	data, err := json.Marshal(map[string]interface{}{
		"Source@odata.bind": rest.FormatURL("Sandboxes('%s')", sourceSandboxName),
		"CleanAfter":        cleanAfter,
	})
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Sandboxes('%s')/tm1.Merge", targetSandboxName)
	_, err = s.rest.POST(ctx, url, string(data))
	return err
}
