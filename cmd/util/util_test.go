/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package util

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSplitNames(t *testing.T) {
	testCases := []struct {
		value    string
		expected []string
	}{
		{
			value:    "Actual,Budget,Forecast",
			expected: []string{"Actual", "Budget", "Forecast"},
		},
		{
			value:    " Actual , Budget ",
			expected: []string{"Actual", "Budget"},
		},
		{
			value:    "Total Year",
			expected: []string{"Total Year"},
		},
		{
			value:    "Actual,,Budget,",
			expected: []string{"Actual", "Budget"},
		},
	}

	for _, testCase := range testCases {
		assert.Check(t, is.DeepEqual(testCase.expected, SplitNames(testCase.value)))
	}

	assert.Check(t, is.Nil(SplitNames("")))
	assert.Check(t, is.Nil(SplitNames("   ")))
}

func TestSplitParameters(t *testing.T) {
	parameters := SplitParameters([]string{"pRegion=Europe", "pYear=2024", "pCube=a=b"})

	assert.Check(t, is.Len(parameters, 3))
	assert.Check(t, is.Equal("Europe", parameters["pRegion"]))
	assert.Check(t, is.Equal("2024", parameters["pYear"]))
	// everything after the first separator belongs to the value
	assert.Check(t, is.Equal("a=b", parameters["pCube"]))

	assert.Check(t, is.Nil(SplitParameters(nil)))
}

func TestYAMLFileToStruct(t *testing.T) {
	definitionFile := filepath.Join(t.TempDir(), "cube.yaml")
	content := `name: Sales
dimensions:
  - Region
  - Month
rules: "SKIPCHECK;\nFEEDERS;"
`
	assert.NilError(t, os.WriteFile(definitionFile, []byte(content), 0644))

	var definition struct {
		Name       string   `yaml:"name"`
		Dimensions []string `yaml:"dimensions"`
		Rules      string   `yaml:"rules"`
	}
	YAMLFileToStruct(definitionFile, &definition)

	assert.Check(t, is.Equal("Sales", definition.Name))
	assert.Check(t, is.DeepEqual([]string{"Region", "Month"}, definition.Dimensions))
	assert.Check(t, is.Equal("SKIPCHECK;\nFEEDERS;", definition.Rules))
}

func TestIsEmptyString(t *testing.T) {
	assert.Check(t, IsEmptyString(""))
	assert.Check(t, IsEmptyString("   "))
	assert.Check(t, !IsEmptyString("}Clients"))
}
