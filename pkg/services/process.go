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
	"github.com/sirupsen/logrus"
)

// process fields the default listing projection would omit
const processSelect = "$select=*,UIData,VariablesUIData," +
	"DataSource/dataSourceNameForServer," +
	"DataSource/dataSourceNameForClient," +
	"DataSource/asciiDecimalSeparator," +
	"DataSource/asciiDelimiterChar," +
	"DataSource/asciiDelimiterType," +
	"DataSource/asciiHeaderRecords," +
	"DataSource/asciiQuoteCharacter," +
	"DataSource/asciiThousandSeparator," +
	"DataSource/view," +
	"DataSource/subset," +
	"DataSource/userName," +
	"DataSource/password"

// unbound TI code is limited to this many statements per procedure
const (
	maxStatements         = 16380
	maxStatementsExtended = 100000
)

const successfulStatus = "CompletedSuccessfully"

// ProcessExecuteResult is the outcome of an execution with return
type ProcessExecuteResult struct {
	Status       string
	ErrorLogFile string
}

// Successful reports whether the process completed without aborting
func (r *ProcessExecuteResult) Successful() bool {
	return r.Status == successfulStatus
}

// ErrorLogFiles returns the error log file names, if any
func (r *ProcessExecuteResult) ErrorLogFiles() []string {
	if r.ErrorLogFile == "" {
		return nil
	}
	return []string{r.ErrorLogFile}
}

// ProcessSyntaxError is one finding of the server-side TI compiler
type ProcessSyntaxError struct {
	Procedure  string `json:"Procedure"`
	LineNumber int    `json:"LineNumber"`
	Message    string `json:"Message"`
}

// ProcessService manages TurboIntegrator processes and their execution
type ProcessService struct {
	ObjectService
}

// NewProcessService creates the service on a shared session
func NewProcessService(client *rest.Client) *ProcessService {
	return &ProcessService{ObjectService: NewObjectService(client)}
}

// Get reads a process including its data source details
func (s *ProcessService) Get(ctx context.Context, processName string) (*objects.Process, error) {
	url := rest.FormatURL("/Processes('%s')", processName) + "?" + processSelect
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return objects.ProcessFromJSON(resp.Body)
}

// GetAll reads all processes, optionally skipping the }bedrock and other
// control processes
func (s *ProcessService) GetAll(ctx context.Context, skipControlProcesses bool) ([]*objects.Process, error) {
	url := "/Processes?" + processSelect
	if skipControlProcesses {
		url += "&$filter=startswith(Name,'}') eq false"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	entries, err := rawValueList(resp)
	if err != nil {
		return nil, err
	}
	processes := make([]*objects.Process, 0, len(entries))
	for _, entry := range entries {
		process, err := objects.ProcessFromJSON(entry)
		if err != nil {
			return nil, err
		}
		processes = append(processes, process)
	}
	return processes, nil
}

// GetAllNames lists the process names
func (s *ProcessService) GetAllNames(ctx context.Context, skipControlProcesses bool) ([]string, error) {
	url := "/Processes?$select=Name"
	if skipControlProcesses {
		url += "&$filter=startswith(Name,'}') eq false"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// SearchStringInCode lists processes whose procedures contain the string
func (s *ProcessService) SearchStringInCode(ctx context.Context, searchString string) ([]string, error) {
	needle := strings.ToLower(strings.ReplaceAll(searchString, " ", ""))
	url := rest.FormatURL(
		"/Processes?$select=Name&$filter="+
			"contains(tolower(replace(PrologProcedure, ' ', '')),'%s') "+
			"or contains(tolower(replace(MetadataProcedure, ' ', '')),'%s') "+
			"or contains(tolower(replace(DataProcedure, ' ', '')),'%s') "+
			"or contains(tolower(replace(EpilogProcedure, ' ', '')),'%s')",
		needle, needle, needle, needle)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// SearchStringInName lists processes whose name contains the string
func (s *ProcessService) SearchStringInName(ctx context.Context, nameContains string) ([]string, error) {
	url := rest.FormatURL(
		"/Processes?$select=Name&$filter=contains(tolower(Name),'%s')",
		strings.ToLower(nameContains))
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	return valueListNames(resp)
}

// Create stores a new process
func (s *ProcessService) Create(ctx context.Context, process *objects.Process) error {
	body, err := process.Body()
	if err != nil {
		return err
	}
	_, err = s.rest.POST(ctx, "/Processes", body)
	return err
}

// Update replaces an existing process
func (s *ProcessService) Update(ctx context.Context, process *objects.Process) error {
	body, err := process.Body()
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Processes('%s')", process.Name)
	_, err = s.rest.PATCH(ctx, url, body)
	return err
}

// UpdateOrCreate updates the process if it exists, creates it otherwise
func (s *ProcessService) UpdateOrCreate(ctx context.Context, process *objects.Process) error {
	exists, err := s.ExistsByName(ctx, process.Name)
	if err != nil {
		return err
	}
	if exists {
		return s.Update(ctx, process)
	}
	return s.Create(ctx, process)
}

// Delete removes a process
func (s *ProcessService) Delete(ctx context.Context, processName string) error {
	url := rest.FormatURL("/Processes('%s')", processName)
	_, err := s.rest.DELETE(ctx, url)
	return err
}

// ExistsByName probes for a process
func (s *ProcessService) ExistsByName(ctx context.Context, processName string) (bool, error) {
	return s.Exists(ctx, rest.FormatURL("/Processes('%s')", processName))
}

// Compile runs the server-side compiler against a stored process
func (s *ProcessService) Compile(ctx context.Context, processName string) ([]ProcessSyntaxError, error) {
	url := rest.FormatURL("/Processes('%s')/tm1.Compile", processName)
	resp, err := s.rest.POST(ctx, url, "")
	if err != nil {
		return nil, err
	}
	return parseSyntaxErrors(resp)
}

// CompileProcess compiles an unbound process definition without storing it
func (s *ProcessService) CompileProcess(ctx context.Context, process *objects.Process) ([]ProcessSyntaxError, error) {
	body, err := process.Body()
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx, "/CompileProcess", `{"Process":`+body+`}`)
	if err != nil {
		return nil, err
	}
	return parseSyntaxErrors(resp)
}

func parseSyntaxErrors(resp *rest.Response) ([]ProcessSyntaxError, error) {
	var payload struct {
		Value []ProcessSyntaxError `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding syntax errors")
	}
	return payload.Value, nil
}

func parametersBody(parameters map[string]interface{}) (string, error) {
	if len(parameters) == 0 {
		return "{}", nil
	}
	entries := make([]map[string]interface{}, 0, len(parameters))
	for name, value := range parameters {
		entries = append(entries, map[string]interface{}{"Name": name, "Value": value})
	}
	data, err := json.Marshal(map[string]interface{}{"Parameters": entries})
	return string(data), err
}

// Execute runs a stored process without waiting for its outcome document
func (s *ProcessService) Execute(ctx context.Context, processName string,
	parameters map[string]interface{}) error {

	body, err := parametersBody(parameters)
	if err != nil {
		return err
	}
	url := rest.FormatURL("/Processes('%s')/tm1.Execute", processName)
	_, err = s.rest.POST(ctx, url, body)
	return err
}

// ExecuteWithReturn runs a stored process and returns its status and error log
func (s *ProcessService) ExecuteWithReturn(ctx context.Context, processName string,
	parameters map[string]interface{}) (*ProcessExecuteResult, error) {

	body, err := parametersBody(parameters)
	if err != nil {
		return nil, err
	}
	url := rest.FormatURL("/Processes('%s')/tm1.ExecuteWithReturn?$expand=*", processName)
	resp, err := s.rest.POST(ctx, url, body)
	if err != nil {
		return nil, err
	}
	return parseExecuteResult(resp)
}

// ExecuteProcessWithReturn runs an unbound process definition
func (s *ProcessService) ExecuteProcessWithReturn(ctx context.Context,
	process *objects.Process) (*ProcessExecuteResult, error) {

	body, err := process.Body()
	if err != nil {
		return nil, err
	}
	resp, err := s.rest.POST(ctx, "/ExecuteProcessWithReturn?$expand=*",
		`{"Process":`+body+`}`)
	if err != nil {
		return nil, err
	}
	return parseExecuteResult(resp)
}

func parseExecuteResult(resp *rest.Response) (*ProcessExecuteResult, error) {
	var payload struct {
		ProcessExecuteStatusCode string `json:"ProcessExecuteStatusCode"`
		ErrorLogFile             *struct {
			Filename string `json:"Filename"`
		} `json:"ErrorLogFile"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding execution result")
	}
	result := &ProcessExecuteResult{Status: payload.ProcessExecuteStatusCode}
	if payload.ErrorLogFile != nil {
		result.ErrorLogFile = payload.ErrorLogFile.Filename
	}
	return result, nil
}

// PollExecuteWithReturn checks on an execution that was submitted with the
// respond-async preference. It returns nil while the process is still running.
func (s *ProcessService) PollExecuteWithReturn(ctx context.Context, asyncID string) (*ProcessExecuteResult, error) {
	resp, err := s.rest.RetrieveAsyncResponse(ctx, asyncID)
	if err != nil {
		return nil, err
	}
	if resp.Header.Get("asyncresult") == "" {
		return nil, nil
	}
	return parseExecuteResult(resp)
}

// maxStatementsForSession returns the statement limit of the connected server
func (s *ProcessService) maxStatementsForSession(ctx context.Context) int {
	if err := s.rest.RequireVersion("ExecuteTICode", "11.8.015"); err == nil {
		return maxStatementsExtended
	}
	return maxStatements
}

// ExecuteTICode runs ad-hoc TI statements through a transient process. The
// process is removed again regardless of the outcome.
func (s *ProcessService) ExecuteTICode(ctx context.Context, prologLines []string,
	epilogLines []string) (*ProcessExecuteResult, error) {

	limit := s.maxStatementsForSession(ctx)
	if len(prologLines) > limit || len(epilogLines) > limit {
		return nil, rest.NewError("too many TI statements for a single process")
	}

	process := objects.NewProcess(s.SuggestUniqueObjectName())
	process.PrologProcedure = strings.Join(prologLines, "\r\n")
	process.EpilogProcedure = strings.Join(epilogLines, "\r\n")

	if err := s.Create(ctx, process); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.Delete(ctx, process.Name); err != nil {
			logrus.Debugf("Could not delete transient process '%s': %v\n", process.Name, err)
		}
	}()
	return s.ExecuteWithReturn(ctx, process.Name, nil)
}

// SearchErrorLogFilenames lists error log files whose name contains the
// search string, newest first when descending is set
func (s *ProcessService) SearchErrorLogFilenames(ctx context.Context, searchString string,
	top int, descending bool) ([]string, error) {

	url := rest.FormatURL(
		"/ErrorLogFiles?$select=Filename&$filter=contains(tolower(Filename),'%s')",
		strings.ToLower(searchString))
	if top > 0 {
		url += fmt.Sprintf("&$top=%d", top)
	}
	if descending {
		url += "&$orderby=Filename desc"
	}
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Value []struct {
			Filename string `json:"Filename"`
		} `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding error log listing")
	}
	filenames := make([]string, 0, len(payload.Value))
	for _, entry := range payload.Value {
		filenames = append(filenames, entry.Filename)
	}
	return filenames, nil
}

// GetErrorLogFilenames lists the error log files a process produced
func (s *ProcessService) GetErrorLogFilenames(ctx context.Context, processName string,
	top int, descending bool) ([]string, error) {

	if processName != "" {
		exists, err := s.ExistsByName(ctx, processName)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, rest.NewError("process '" + processName + "' does not exist")
		}
	}
	return s.SearchErrorLogFilenames(ctx, processName, top, descending)
}

// GetErrorLogFileContent downloads the content of a process error log
func (s *ProcessService) GetErrorLogFileContent(ctx context.Context, filename string) (string, error) {
	url := rest.FormatURL("/ErrorLogFiles('%s')/Content", filename)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GetLastMessageFromMessageLog returns the latest message-log line the process wrote
func (s *ProcessService) GetLastMessageFromMessageLog(ctx context.Context, processName string) (string, error) {
	if err := s.rest.RequireAdmin(ctx, "GetLastMessageFromMessageLog"); err != nil {
		return "", err
	}
	url := rest.FormatURL(
		"/MessageLogEntries?$orderby=TimeStamp desc&$top=1"+
			"&$filter=Logger eq 'TM1.Process' and contains(Message, '%s')", processName)
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return "", err
	}
	var payload struct {
		Value []struct {
			Message string `json:"Message"`
		} `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", errors.Wrap(err, "decoding message log")
	}
	if len(payload.Value) == 0 {
		return "", nil
	}
	return payload.Value[0].Message, nil
}
