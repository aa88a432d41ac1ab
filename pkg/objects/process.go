/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"strings"
)

// Markers the server wraps around its generated section of each procedure
const (
	BeginGeneratedStatements = "#****Begin: Generated Statements***"
	EndGeneratedStatements   = "#****End: Generated Statements****"
)

var autoGeneratedStatements = BeginGeneratedStatements + "\r\n" + EndGeneratedStatements + "\r\n"

// AddGeneratedStringToCode prefixes the generated-statements guard when the
// procedure does not carry one yet
func AddGeneratedStringToCode(code string) string {
	if strings.Contains(code, BeginGeneratedStatements) &&
		strings.Contains(code, EndGeneratedStatements) {
		return code
	}
	return autoGeneratedStatements + code
}

// ProcessDataSource describes where a process reads its records from
type ProcessDataSource struct {
	Type                    string `json:"Type"`
	DataSourceNameForClient string `json:"dataSourceNameForClient,omitempty"`
	DataSourceNameForServer string `json:"dataSourceNameForServer,omitempty"`

	// ASCII sources
	AsciiDecimalSeparator  string `json:"asciiDecimalSeparator,omitempty"`
	AsciiDelimiterChar     string `json:"asciiDelimiterChar,omitempty"`
	AsciiDelimiterType     string `json:"asciiDelimiterType,omitempty"`
	AsciiHeaderRecords     int    `json:"asciiHeaderRecords,omitempty"`
	AsciiQuoteCharacter    string `json:"asciiQuoteCharacter,omitempty"`
	AsciiThousandSeparator string `json:"asciiThousandSeparator,omitempty"`

	// ODBC sources
	UserName string `json:"userName,omitempty"`
	Password string `json:"password,omitempty"`

	// TM1 sources
	View   string `json:"view,omitempty"`
	Subset string `json:"subset,omitempty"`
}

func (ds ProcessDataSource) bodyAsMap() map[string]interface{} {
	body := map[string]interface{}{"Type": ds.Type}
	switch ds.Type {
	case "ASCII":
		body["asciiDecimalSeparator"] = defaultString(ds.AsciiDecimalSeparator, ".")
		delimiterType := defaultString(ds.AsciiDelimiterType, "Character")
		body["asciiDelimiterType"] = delimiterType
		if delimiterType != "FixedWidth" {
			body["asciiDelimiterChar"] = defaultString(ds.AsciiDelimiterChar, ",")
		}
		body["asciiHeaderRecords"] = ds.AsciiHeaderRecords
		body["asciiQuoteCharacter"] = defaultString(ds.AsciiQuoteCharacter, "\"")
		body["asciiThousandSeparator"] = defaultString(ds.AsciiThousandSeparator, ",")
		body["dataSourceNameForClient"] = ds.DataSourceNameForClient
		body["dataSourceNameForServer"] = ds.DataSourceNameForServer
	case "ODBC":
		body["dataSourceNameForClient"] = ds.DataSourceNameForClient
		body["dataSourceNameForServer"] = ds.DataSourceNameForServer
		body["userName"] = ds.UserName
		body["password"] = ds.Password
	case "TM1CubeView":
		body["dataSourceNameForClient"] = ds.DataSourceNameForClient
		body["dataSourceNameForServer"] = ds.DataSourceNameForServer
		body["view"] = ds.View
	case "TM1DimensionSubset":
		body["dataSourceNameForClient"] = ds.DataSourceNameForClient
		body["dataSourceNameForServer"] = ds.DataSourceNameForServer
		body["subset"] = ds.Subset
	}
	return body
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// ProcessParameter is a named prompt of a process. Type derives from the
// value: strings are String parameters, everything else is Numeric.
type ProcessParameter struct {
	Name   string      `json:"Name"`
	Prompt string      `json:"Prompt"`
	Value  interface{} `json:"Value"`
}

// ParameterType returns the server-side type of the parameter
func (p ProcessParameter) ParameterType() string {
	if _, ok := p.Value.(string); ok {
		return "String"
	}
	return "Numeric"
}

// ProcessVariable maps a data source column into the process
type ProcessVariable struct {
	Name string `json:"Name"`
	Type string `json:"Type"`
}

// Process mirrors a TurboIntegrator process: four procedures, a data source,
// parameters and variables.
type Process struct {
	Name              string
	HasSecurityAccess bool
	PrologProcedure   string
	MetadataProcedure string
	DataProcedure     string
	EpilogProcedure   string
	DataSource        ProcessDataSource
	Parameters        []ProcessParameter
	Variables         []ProcessVariable
}

// NewProcess creates a process without a data source
func NewProcess(name string) *Process {
	return &Process{
		Name:       name,
		DataSource: ProcessDataSource{Type: "None"},
	}
}

// AddParameter registers a prompt with a default value
func (p *Process) AddParameter(name, prompt string, value interface{}) {
	p.Parameters = append(p.Parameters, ProcessParameter{Name: name, Prompt: prompt, Value: value})
}

// RemoveParameter drops a parameter by name
func (p *Process) RemoveParameter(name string) {
	for i, parameter := range p.Parameters {
		if NamesEqual(parameter.Name, name) {
			p.Parameters = append(p.Parameters[:i], p.Parameters[i+1:]...)
			return
		}
	}
}

// AddVariable maps a data source column; variableType is String or Numeric
func (p *Process) AddVariable(name, variableType string) {
	p.Variables = append(p.Variables, ProcessVariable{Name: name, Type: variableType})
}

func variableUIData(variableType string) string {
	if variableType == "String" {
		return "VarType=32\fColType=827\f"
	}
	return "VarType=33\fColType=827\f"
}

// Body builds the creation body with the generated-statements guards applied
func (p *Process) Body() (string, error) {
	body := make(map[string]interface{})
	body["Name"] = p.Name
	body["PrologProcedure"] = AddGeneratedStringToCode(p.PrologProcedure)
	body["MetadataProcedure"] = AddGeneratedStringToCode(p.MetadataProcedure)
	body["DataProcedure"] = AddGeneratedStringToCode(p.DataProcedure)
	body["EpilogProcedure"] = AddGeneratedStringToCode(p.EpilogProcedure)
	body["HasSecurityAccess"] = p.HasSecurityAccess
	body["UIData"] = "CubeAction=1511\fDataAction=1503\fCubeLogChanges=0\f"
	body["DataSource"] = p.DataSource.bodyAsMap()

	parameters := make([]map[string]interface{}, 0, len(p.Parameters))
	for _, parameter := range p.Parameters {
		parameters = append(parameters, map[string]interface{}{
			"Name":   parameter.Name,
			"Prompt": parameter.Prompt,
			"Value":  parameter.Value,
			"Type":   parameter.ParameterType(),
		})
	}
	body["Parameters"] = parameters

	variables := make([]map[string]interface{}, 0, len(p.Variables))
	uiData := make([]string, 0, len(p.Variables))
	for i, variable := range p.Variables {
		variables = append(variables, map[string]interface{}{
			"Name":      variable.Name,
			"Type":      variable.Type,
			"Position":  i + 1,
			"StartByte": 0,
			"EndByte":   0,
		})
		uiData = append(uiData, variableUIData(variable.Type))
	}
	body["Variables"] = variables
	body["VariablesUIData"] = uiData

	data, err := json.Marshal(body)
	return string(data), err
}

// ProcessFromJSON parses the expanded server representation
func ProcessFromJSON(data []byte) (*Process, error) {
	var raw struct {
		Name              string             `json:"Name"`
		HasSecurityAccess bool               `json:"HasSecurityAccess"`
		PrologProcedure   string             `json:"PrologProcedure"`
		MetadataProcedure string             `json:"MetadataProcedure"`
		DataProcedure     string             `json:"DataProcedure"`
		EpilogProcedure   string             `json:"EpilogProcedure"`
		DataSource        ProcessDataSource  `json:"DataSource"`
		Parameters        []ProcessParameter `json:"Parameters"`
		Variables         []ProcessVariable  `json:"Variables"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &Process{
		Name:              raw.Name,
		HasSecurityAccess: raw.HasSecurityAccess,
		PrologProcedure:   raw.PrologProcedure,
		MetadataProcedure: raw.MetadataProcedure,
		DataProcedure:     raw.DataProcedure,
		EpilogProcedure:   raw.EpilogProcedure,
		DataSource:        raw.DataSource,
		Parameters:        raw.Parameters,
		Variables:         raw.Variables,
	}, nil
}
