/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
)

// TM1Service bundles every resource service on one authenticated session
type TM1Service struct {
	Cubes         *CubeService
	Dimensions    *DimensionService
	Hierarchies   *HierarchyService
	Elements      *ElementService
	Subsets       *SubsetService
	Views         *ViewService
	Cells         *CellService
	Processes     *ProcessService
	Chores        *ChoreService
	Security      *SecurityService
	Sandboxes     *SandboxService
	Annotations   *AnnotationService
	Configuration *ConfigurationService
	Server        *ServerService
	Sessions      *SessionService
	Git           *GitService
	Applications  *ApplicationService

	client *rest.Client
}

// New connects to the server described by the config and wires all services
// onto the session
func New(ctx context.Context, cfg rest.Config) (*TM1Service, error) {
	client, err := rest.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return NewWithClient(client), nil
}

// NewWithClient wires all services onto an existing session
func NewWithClient(client *rest.Client) *TM1Service {
	return &TM1Service{
		Cubes:         NewCubeService(client),
		Dimensions:    NewDimensionService(client),
		Hierarchies:   NewHierarchyService(client),
		Elements:      NewElementService(client),
		Subsets:       NewSubsetService(client),
		Views:         NewViewService(client),
		Cells:         NewCellService(client),
		Processes:     NewProcessService(client),
		Chores:        NewChoreService(client),
		Security:      NewSecurityService(client),
		Sandboxes:     NewSandboxService(client),
		Annotations:   NewAnnotationService(client),
		Configuration: NewConfigurationService(client),
		Server:        NewServerService(client),
		Sessions:      NewSessionService(client),
		Git:           NewGitService(client),
		Applications:  NewApplicationService(client),
		client:        client,
	}
}

// Client exposes the underlying session
func (s *TM1Service) Client() *rest.Client {
	return s.client
}

// Version returns the server version captured at login
func (s *TM1Service) Version() string {
	return s.client.Version()
}

// Whoami reads the user owning the session
func (s *TM1Service) Whoami(ctx context.Context) (*objects.User, error) {
	return s.Security.GetCurrentUser(ctx)
}

// SaveData persists all in-memory cube changes to disk
func (s *TM1Service) SaveData(ctx context.Context) error {
	return s.Server.SaveData(ctx)
}

// ReConnect establishes a fresh session with the stored credentials
func (s *TM1Service) ReConnect(ctx context.Context) error {
	return s.client.ReConnect(ctx)
}

// Logout closes the session on the server
func (s *TM1Service) Logout(ctx context.Context) error {
	return s.client.Logout(ctx)
}
