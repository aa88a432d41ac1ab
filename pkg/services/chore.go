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

const choreExpand = "?$expand=Tasks($expand=Process($select=Name),Parameters)"

// ChoreService manages chores. Structural changes require the chore to be
// inactive, so updates deactivate first and restore the state afterwards.
type ChoreService struct {
	ObjectService
}

// NewChoreService creates the service on a shared session
func NewChoreService(client *rest.Client) *ChoreService {
	return &ChoreService{ObjectService: NewObjectService(client)}
}

// Get reads a chore with its tasks expanded
func (s *ChoreService) Get(ctx context.Context, choreName string) (*objects.Chore, error) {
	url := rest.FormatURL("/Chores('%s')", choreName) + choreExpand
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.ChoreFromJSON(resp.Body)
}

// GetAll reads all chores with tasks expanded
func (s *ChoreService) GetAll(ctx context.Context) ([]*objects.Chore, error) {
	resp, err := s.rest.GET(ctx, "/Chores"+choreExpand)
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	chores := make([]*objects.Chore, 0, len(entries))
	for _, entry := range entries {
		chore, err := objects.ChoreFromJSON(entry)
		if err != nil {
			return nil, err
		}
		chores = append(chores, chore)
	}
	return chores, nil
}

// GetAllNames lists the chore names
func (s *ChoreService) GetAllNames(ctx context.Context) ([]string, error) {
	resp, err := s.rest.GET(ctx, "/Chores?$select=Name")
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Create stores a new chore and activates it when the definition says so
func (s *ChoreService) Create(ctx context.Context, chore *objects.Chore) error {
	body, err := chore.Body()
	if err != nil {
		return err
	}
	if _, err := s.rest.POST(ctx, "/Chores", body); err != nil {
		return err
	}
	if chore.Active {
		return s.Activate(ctx, chore.Name)
	}
	return nil
}

// Update rewrites a chore. The chore is deactivated for the duration of the
// change; tasks are aligned one by one.
func (s *ChoreService) Update(ctx context.Context, chore *objects.Chore) error {
	current, err := s.Get(ctx, chore.Name)
	if err != nil {
		return err
	}
	if current.Active {
		if err := s.Deactivate(ctx, chore.Name); err != nil {
			return err
		}
	}

	executionMode := chore.ExecutionMode
	if executionMode == "" {
		executionMode = objects.ChoreSingleCommit
	}
	head, err := json.Marshal(map[string]interface{}{
		"StartTime":      chore.StartTime.String(),
		"DSTSensitivity": chore.DSTSensitive,
		"ExecutionMode":  executionMode,
		"Frequency":      chore.Frequency.String(),
	})
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Chores('%s')", chore.Name)
	if _, err := s.rest.PATCH(ctx, url, string(head)); err != nil {
		return err
	}
	if err := s.updateTasks(ctx, chore, current); err != nil {
		return err
	}
	if chore.Active {
		return s.Activate(ctx, chore.Name)
	}
	return nil
}

// updateTasks aligns the stored task list with the wanted one step by step
func (s *ChoreService) updateTasks(ctx context.Context, chore, current *objects.Chore) error {
	choreURL := rest.FormatURL("/Chores('%s')", chore.Name)
	for step, task := range chore.Tasks {
		task.Step = step
		if step < len(current.Tasks) {
			if current.Tasks[step].Equal(task) {
				continue
			}
			data, err := json.Marshal(task.BodyAsMap())
			if err != nil {
				return err
			}
			if _, err := s.rest.PATCH(ctx,
				fmt.Sprintf("%s/Tasks(%d)", choreURL, step), string(data)); err != nil {
				return err
			}
			continue
		}
		data, err := json.Marshal(task.BodyAsMap())
		if err != nil {
			return err
		}
		if _, err := s.rest.POST(ctx, choreURL+"/Tasks", string(data)); err != nil {
			return err
		}
	}
	for step := len(current.Tasks) - 1; step >= len(chore.Tasks); step-- {
		if _, err := s.rest.DELETE(ctx,
			fmt.Sprintf("%s/Tasks(%d)", choreURL, step)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateOrCreate updates the chore if it exists, creates it otherwise
func (s *ChoreService) UpdateOrCreate(ctx context.Context, chore *objects.Chore) error {
	exists, err := s.ExistsByName(ctx, chore.Name)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, chore)
	}
	return s.Create(ctx, chore)
}

// Delete removes a chore
func (s *ChoreService) Delete(ctx context.Context, choreName string) error {
	url := rest.FormatURL("/Chores('%s')", choreName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// ExistsByName probes for a chore
func (s *ChoreService) ExistsByName(ctx context.Context, choreName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Chores('%s')", choreName))
}

// Activate enables the schedule of a chore
func (s *ChoreService) Activate(ctx context.Context, choreName string) error {
	url := rest.FormatURL("/Chores('%s')/tm1.Activate", choreName)
	_, err := s.rest.POST(ctx, url, "")
	return err
}

// Deactivate disables the schedule of a chore
func (s *ChoreService) Deactivate(ctx context.Context, choreName string) error {
	url := rest.FormatURL("/Chores('%s')/tm1.Deactivate", choreName)
	_, err := s.rest.POST(ctx, url, "")
	return err
}

// Execute runs a chore once, outside of its schedule
func (s *ChoreService) Execute(ctx context.Context, choreName string) error {
	url := rest.FormatURL("/Chores('%s')/tm1.Execute", choreName)
	_, err := s.rest.POST(ctx, url, "")
	return err
}

// SetLocalStartTime reschedules the chore relative to the server timezone,
// through the tm1.SetServerLocalStartTime action
func (s *ChoreService) SetLocalStartTime(ctx context.Context, choreName string,
	startTime objects.ChoreStartTime) error {

	chore, err := s.Get(ctx, choreName)
	if err != nil {
		return err
	}
	wasActive := chore.Active
	if wasActive {
		if err := s.Deactivate(ctx, choreName); err != nil {
			return err
		}
	}
	data, err := json.Marshal(map[string]string{
		"StartDate": fmt.Sprintf("%d-%d-%d", startTime.Year, startTime.Month, startTime.Day),
		"StartTime": fmt.Sprintf("%02d:%02d:%02d", startTime.Hour, startTime.Minute, startTime.Second),
	})
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Chores('%s')/tm1.SetServerLocalStartTime", choreName)
	if _, err := s.rest.POST(ctx, url, string(data)); err != nil {
		return err
	}
	if wasActive {
		return s.Activate(ctx, choreName)
	}
	return nil
}

// SearchForProcessName lists chores containing a task running the process
func (s *ChoreService) SearchForProcessName(ctx context.Context, processName string) ([]string, error) {
	url := rest.FormatURL(
		"/Chores?$select=Name&$filter=Tasks/any(t: replace(tolower(t/Process/Name), ' ', '') eq '%s')",
		strings.ToLower(strings.ReplaceAll(processName, " ", "")))
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	names, err := valueListNames(resp)
	if err != nil {
		return nil, errors.Wrap(err, "decoding chore search")
	}
	return names, nil
}
