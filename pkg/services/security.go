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

// SecurityService manages users, groups and their memberships
type SecurityService struct {
	ObjectService
}

// NewSecurityService creates the service on a shared session
func NewSecurityService(client *rest.Client) *SecurityService {
	return &SecurityService{ObjectService: NewObjectService(client)}
}

// GetUser reads a user with group memberships
func (s *SecurityService) GetUser(ctx context.Context, userName string) (*objects.User, error) {
	url := rest.FormatURL("/Users('%s')?$expand=Groups", userName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.UserFromJSON(resp.Body)
}

// GetCurrentUser reads the user owning the session
func (s *SecurityService) GetCurrentUser(ctx context.Context) (*objects.User, error) {
	resp, err := s.rest.GET(ctx, "/ActiveUser?$expand=Groups")
	if err != nil {
		return nil, err
	}
	return objects.UserFromJSON(resp.Body)
}

// GetAllUsers reads all users with group memberships
func (s *SecurityService) GetAllUsers(ctx context.Context) ([]*objects.User, error) {
	resp, err := s.rest.GET(ctx, "/Users?$expand=Groups")
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	users := make([]*objects.User, 0, len(entries))
	for _, entry := range entries {
		user, err := objects.UserFromJSON(entry)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// GetAllUserNames lists the user names
func (s *SecurityService) GetAllUserNames(ctx context.Context) ([]string, error) {
	resp, err := s.rest.GET(ctx, "/Users?$select=Name")
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// CreateUser stores a new user. Requires SecurityAdmin permissions.
func (s *SecurityService) CreateUser(ctx context.Context, user *objects.User) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "CreateUser"); err != nil {
		return err
	}
	body, err := user.Body()
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/Users", body)
	return err
}

// UpdateUser rewrites a user, aligning its group memberships
func (s *SecurityService) UpdateUser(ctx context.Context, user *objects.User) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "UpdateUser"); err != nil {
		return err
	}
	current, err := s.GetUser(ctx, user.Name)
	if err != nil {
		return err
	}
	wanted := objects.NewNameSet(user.Groups()...)
	for _, group := range current.Groups() {
		if wanted.Contains(group) {
			continue
		}
		if err := s.RemoveUserFromGroup(ctx, user.Name, group); err != nil {
			return err
		}
	}
	body, err := user.Body()
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Users('%s')", user.Name)
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// DeleteUser removes a user
func (s *SecurityService) DeleteUser(ctx context.Context, userName string) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "DeleteUser"); err != nil {
		return err
	}
	url := rest.FormatURL("/Users('%s')", userName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// UserExists probes for a user
func (s *SecurityService) UserExists(ctx context.Context, userName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Users('%s')", userName))
}

// GetAllGroups lists the group names
func (s *SecurityService) GetAllGroups(ctx context.Context) ([]string, error) {
	resp, err := s.rest.GET(ctx, "/Groups?$select=Name")
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// CreateGroup stores a new group
func (s *SecurityService) CreateGroup(ctx context.Context, groupName string) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "CreateGroup"); err != nil {
		return err
	}
	data, err := json.Marshal(map[string]string{"Name": groupName})
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/Groups", string(data))
	return err
}

// DeleteGroup removes a group
func (s *SecurityService) DeleteGroup(ctx context.Context, groupName string) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "DeleteGroup"); err != nil {
		return err
	}
	url := rest.FormatURL("/Groups('%s')", groupName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// GroupExists probes for a group
func (s *SecurityService) GroupExists(ctx context.Context, groupName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Groups('%s')", groupName))
}

// AddUserToGroups registers the user in each of the groups
func (s *SecurityService) AddUserToGroups(ctx context.Context, userName string, groups ...string) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "AddUserToGroups"); err != nil {
		return err
	}
	bindings := make([]string, 0, len(groups))
	for _, group := range groups {
		bindings = append(bindings, rest.FormatURL("Groups('%s')", group))
	}
	data, err := json.Marshal(map[string]interface{}{"Groups@odata.bind": bindings})
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Users('%s')", userName)
	_, err = s.rest.PATCH(ctx, url, string(data))
	return err
}

// RemoveUserFromGroup drops one group membership
func (s *SecurityService) RemoveUserFromGroup(ctx context.Context, userName, groupName string) error {
	if err := s.rest.RequireSecurityAdmin(ctx, "RemoveUserFromGroup"); err != nil {
		return err
	}
	url := rest.FormatURL("/Users('%s')/Groups?$id=Groups('%s')", userName, groupName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// GetGroupsFromUser lists the group memberships of a user
func (s *SecurityService) GetGroupsFromUser(ctx context.Context, userName string) ([]string, error) {
	actualName, err := s.DetermineActualObjectName(ctx, "Users", userName)
	if err != nil {
		return nil, err
	}
	url := rest.FormatURL("/Users('%s')/Groups", actualName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// GetReadOnlyUsers lists the users flagged read-only in }ClientProperties
func (s *SecurityService) GetReadOnlyUsers(ctx context.Context) ([]string, error) {
	mdx := "SELECT {[}ClientProperties].[ReadOnlyUser]} ON COLUMNS, " +
		"NON EMPTY {[}Clients].MEMBERS} ON ROWS FROM [}ClientProperties]"
	cells := NewCellService(s.rest)
	cellset, err := cells.ExecuteMDX(ctx, mdx, ExtractOptions{})
	if err != nil {
		return nil, err
	}
	var readOnlyUsers []string
	for _, cell := range cellset.Cells {
		if len(cell.Coordinates) == 0 || cell.Value == nil {
			continue
		}
		switch value := cell.Value.(type) {
		case float64:
			if value == 0 {
				continue
			}
		case string:
			if value == "" {
				continue
			}
		case bool:
			if !value {
				continue
			}
		}
		readOnlyUsers = append(readOnlyUsers, cell.Coordinates[0])
	}
	return readOnlyUsers, nil
}

// GetUserNamesFromGroup lists the members of a group
func (s *SecurityService) GetUserNamesFromGroup(ctx context.Context, groupName string) ([]string, error) {
	url := rest.FormatURL("/Groups('%s')/Users?$select=Name", groupName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// SecurityRefresh reprocesses the security structures after direct writes to
// the }ClientProperties family of control cubes
func (s *SecurityService) SecurityRefresh(ctx context.Context) error {
	processes := NewProcessService(s.rest)
	result, err := processes.ExecuteTICode(ctx, []string{"SecurityRefresh;"}, nil)
	if err != nil {
		return err
	}
	if !result.Successful() {
		return rest.NewError("security refresh failed with status '" + result.Status + "'")
	}
	return nil
}
