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

// GitService drives source control deployments of the model
type GitService struct {
	ObjectService
}

// NewGitService creates the service on a shared session
func NewGitService(client *rest.Client) *GitService {
	return &GitService{ObjectService: NewObjectService(client)}
}

// GitCredentials authenticate against the remote repository
type GitCredentials struct {
	Username            string
	Password            string
	PersonalAccessToken string
}

func (c GitCredentials) apply(body map[string]interface{}) {
	if c.PersonalAccessToken != "" {
		body["Password"] = c.PersonalAccessToken
		return
	}
	if c.Username != "" {
		body["Username"] = c.Username
		body["Password"] = c.Password
	}
}

// Init connects the model to a remote repository
func (s *GitService) Init(ctx context.Context, url, deployment string,
	credentials GitCredentials, force bool) (*objects.Git, error) {

	body := map[string]interface{}{
		"URL":        url,
		"Deployment": deployment,
		"Force":      force,
	}
	credentials.apply(body)
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx, "/GitInit", string(data))
	if err != nil {
		return nil, err
	}
	return objects.GitFromJSON(resp.Body)
}

// Uninit disconnects the model from its remote repository
func (s *GitService) Uninit(ctx context.Context, force bool) error {
	data, err := json.Marshal(map[string]bool{"Force": force})
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/GitUninit", string(data))
	return err
}

// Status reads the repository state including the remote branches
func (s *GitService) Status(ctx context.Context, credentials GitCredentials) (*objects.Git, error) {
	body := map[string]interface{}{}
	credentials.apply(body)
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx, "/GitStatus", string(data))
	if err != nil {
		return nil, err
	}
	return objects.GitFromJSON(resp.Body)
}

// Push prepares a push of the model to the remote. The returned plan has to
// be executed to take effect unless executeNow is set.
func (s *GitService) Push(ctx context.Context, message, author, email, branch,
	newBranch string, force bool, credentials GitCredentials,
	executeNow bool) (*objects.GitPlan, error) {

	body := map[string]interface{}{
		"Message": message,
		"Author":  author,
		"Email":   email,
		"Force":   force,
	}
	if branch != "" {
		body["Branch"] = branch
	}
	if newBranch != "" {
		body["NewBranch"] = newBranch
	}
	credentials.apply(body)
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx, "/GitPush", string(data))
	if err != nil {
		return nil, err
	}
	plan, err := objects.GitPlanFromJSON(resp.Body)
	if err != nil {
		return nil, err
	}
	if executeNow {
		if err := s.ExecutePlan(ctx, plan.ID); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

// Pull prepares a pull of a branch into the model
func (s *GitService) Pull(ctx context.Context, branch string, force bool,
	credentials GitCredentials, executeNow bool) (*objects.GitPlan, error) {

	body := map[string]interface{}{
		"Branch": branch,
		"Force":  force,
	}
	credentials.apply(body)
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx, "/GitPull", string(data))
	if err != nil {
		return nil, err
	}
	plan, err := objects.GitPlanFromJSON(resp.Body)
	if err != nil {
		return nil, err
	}
	if executeNow {
		if err := s.ExecutePlan(ctx, plan.ID); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

// GetPlans lists the pending push and pull plans
func (s *GitService) GetPlans(ctx context.Context) ([]*objects.GitPlan, error) {
	resp, err := s.rest.GET(ctx, "/GitPlans")
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	plans := make([]*objects.GitPlan, 0, len(entries))
	for _, entry := range entries {
		plan, err := objects.GitPlanFromJSON(entry)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// ExecutePlan applies a prepared plan
func (s *GitService) ExecutePlan(ctx context.Context, planID string) error {
	url := rest.FormatURL("/GitPlans('%s')/tm1.Execute", planID)
	_, err := s.rest.POST(ctx, url, "")
	return err
}
