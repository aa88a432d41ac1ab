/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/cubewise-code/tm1go/pkg/rest"
)

// Chore execution modes
const (
	ChoreSingleCommit   = "SingleCommit"
	ChoreMultipleCommit = "MultipleCommit"
)

// ChoreStartTime is the scheduled first run of a chore. TZOffset carries an
// optional ±hh:mm suffix; without one the time is serialized as UTC.
type ChoreStartTime struct {
	Year     int
	Month    int
	Day      int
	Hour     int
	Minute   int
	Second   int
	TZOffset string
}

var startTimePattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})(?::(\d{2}))?(Z|[+-]\d{2}:\d{2})?$`)

// ParseChoreStartTime parses the server format 2016-09-25T20:25:00Z with an
// optional ±hh:mm offset in place of the Z
func ParseChoreStartTime(value string) (ChoreStartTime, error) {
	match := startTimePattern.FindStringSubmatch(value)
	if match == nil {
		return ChoreStartTime{}, fmt.Errorf("invalid chore start time: '%s'", value)
	}
	atoi := func(s string) int {
		var n int
		fmt.Sscanf(s, "%d", &n)
		return n
	}
	st := ChoreStartTime{
		Year:   atoi(match[1]),
		Month:  atoi(match[2]),
		Day:    atoi(match[3]),
		Hour:   atoi(match[4]),
		Minute: atoi(match[5]),
		Second: atoi(match[6]),
	}
	if match[7] != "" && match[7] != "Z" {
		st.TZOffset = match[7]
	}
	return st, nil
}

func (st ChoreStartTime) String() string {
	suffix := st.TZOffset
	if suffix == "" {
		suffix = "Z"
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d%s",
		st.Year, st.Month, st.Day, st.Hour, st.Minute, st.Second, suffix)
}

// ChoreFrequency is the execution interval of a chore
type ChoreFrequency struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

var frequencyPattern = regexp.MustCompile(`^P(\d+)DT(\d+)H(\d+)M(\d+)S$`)

// ParseChoreFrequency parses the server format P01DT02H03M04S
func ParseChoreFrequency(value string) (ChoreFrequency, error) {
	match := frequencyPattern.FindStringSubmatch(value)
	if match == nil {
		return ChoreFrequency{}, fmt.Errorf("invalid chore frequency: '%s'", value)
	}
	atoi := func(s string) int {
		var n int
		fmt.Sscanf(s, "%d", &n)
		return n
	}
	return ChoreFrequency{
		Days:    atoi(match[1]),
		Hours:   atoi(match[2]),
		Minutes: atoi(match[3]),
		Seconds: atoi(match[4]),
	}, nil
}

func (f ChoreFrequency) String() string {
	return fmt.Sprintf("P%02dDT%02dH%02dM%02dS", f.Days, f.Hours, f.Minutes, f.Seconds)
}

// ChoreTaskParameter is a parameter handed to the process of a task
type ChoreTaskParameter struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// ChoreTask binds a process with parameters to a step of a chore
type ChoreTask struct {
	Step        int
	ProcessName string
	Parameters  []ChoreTaskParameter
}

// BodyAsMap builds the task body used both inline at chore creation and for
// task-level updates
func (t ChoreTask) BodyAsMap() map[string]interface{} {
	parameters := t.Parameters
	if parameters == nil {
		parameters = []ChoreTaskParameter{}
	}
	return map[string]interface{}{
		"Process@odata.bind": rest.FormatURL("Processes('%s')", t.ProcessName),
		"Parameters":         parameters,
	}
}

// Equal compares two tasks by process and parameters, ignoring the step
func (t ChoreTask) Equal(other ChoreTask) bool {
	if !NamesEqual(t.ProcessName, other.ProcessName) {
		return false
	}
	if len(t.Parameters) != len(other.Parameters) {
		return false
	}
	for i, parameter := range t.Parameters {
		if parameter != other.Parameters[i] {
			return false
		}
	}
	return true
}

// Chore mirrors a scheduled sequence of process executions
type Chore struct {
	Name          string
	StartTime     ChoreStartTime
	DSTSensitive  bool
	Active        bool
	ExecutionMode string
	Frequency     ChoreFrequency
	Tasks         []ChoreTask
}

// AddTask appends a task with the next step number
func (c *Chore) AddTask(processName string, parameters []ChoreTaskParameter) {
	c.Tasks = append(c.Tasks, ChoreTask{
		Step:        len(c.Tasks),
		ProcessName: processName,
		Parameters:  parameters,
	})
}

// Body builds the creation body of the chore
func (c *Chore) Body() (string, error) {
	executionMode := c.ExecutionMode
	if executionMode == "" {
		executionMode = ChoreSingleCommit
	}
	tasks := make([]map[string]interface{}, 0, len(c.Tasks))
	for _, task := range c.Tasks {
		tasks = append(tasks, task.BodyAsMap())
	}
	body := map[string]interface{}{
		"Name":          c.Name,
		"StartTime":     c.StartTime.String(),
		"DSTSensitive":  c.DSTSensitive,
		"Active":        c.Active,
		"ExecutionMode": executionMode,
		"Frequency":     c.Frequency.String(),
		"Tasks":         tasks,
	}
	data, err := json.Marshal(body)
	return string(data), err
}

// ChoreFromJSON parses the expanded server representation
func ChoreFromJSON(data []byte) (*Chore, error) {
	var raw struct {
		Name          string `json:"Name"`
		StartTime     string `json:"StartTime"`
		DSTSensitive  bool   `json:"DSTSensitivity"`
		Active        bool   `json:"Active"`
		ExecutionMode string `json:"ExecutionMode"`
		Frequency     string `json:"Frequency"`
		Tasks         []struct {
			Step       int                  `json:"Step"`
			Parameters []ChoreTaskParameter `json:"Parameters"`
			Process    *struct {
				Name string `json:"Name"`
			} `json:"Process"`
		} `json:"Tasks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	chore := &Chore{
		Name:          raw.Name,
		DSTSensitive:  raw.DSTSensitive,
		Active:        raw.Active,
		ExecutionMode: raw.ExecutionMode,
	}
	if raw.StartTime != "" {
		startTime, err := ParseChoreStartTime(raw.StartTime)
		if err != nil {
			return nil, err
		}
		chore.StartTime = startTime
	}
	if raw.Frequency != "" {
		frequency, err := ParseChoreFrequency(raw.Frequency)
		if err != nil {
			return nil, err
		}
		chore.Frequency = frequency
	}
	for _, task := range raw.Tasks {
		choreTask := ChoreTask{Step: task.Step, Parameters: task.Parameters}
		if task.Process != nil {
			choreTask.ProcessName = task.Process.Name
		}
		chore.Tasks = append(chore.Tasks, choreTask)
	}
	return chore, nil
}
