/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestFormatURLEscapesSingleQuotes(t *testing.T) {
	url := FormatURL("/Cubes('%s')", "Mike's Cube")
	assert.Check(t, is.Equal("/Cubes('Mike''s Cube')", url))
}

func TestFormatURLEscapesSpecialCharacters(t *testing.T) {
	url := FormatURL("/Dimensions('%s')", "plan#region?a&b%c")
	assert.Check(t, is.Equal("/Dimensions('plan%23region%3Fa%26b%25c')", url))
}

func TestAddURLParameters(t *testing.T) {
	url := AddURLParameters("/Cubes('plan')/tm1.Update", map[string]string{
		"!sandbox": "Sandbox1",
	})
	assert.Check(t, is.Equal("/Cubes('plan')/tm1.Update?!sandbox=Sandbox1", url))
}

func TestAddURLParametersPercentEncodesValues(t *testing.T) {
	url := AddURLParameters("/Cellsets('X')/Cells", map[string]string{
		"!sandbox": "My Sandbox&Co",
	})
	assert.Check(t, is.Equal("/Cellsets('X')/Cells?!sandbox=My+Sandbox%26Co", url))
}

func TestAddURLParametersDoublesSingleQuotes(t *testing.T) {
	url := AddURLParameters("/Cubes('plan')/tm1.Update", map[string]string{
		"!sandbox": "Bob's",
	})
	assert.Check(t, is.Equal("/Cubes('plan')/tm1.Update?!sandbox=Bob%27%27s", url))
}

func TestAddURLParametersSkipsEmptyValues(t *testing.T) {
	url := AddURLParameters("/Cellsets('X')/Cells", map[string]string{
		"!sandbox":   "",
		"!ChangeSet": "",
	})
	assert.Check(t, is.Equal("/Cellsets('X')/Cells", url))
}

func TestAddURLParametersAppendsToExistingQuery(t *testing.T) {
	url := AddURLParameters("/Cubes?$select=Name", map[string]string{
		"!sandbox": "Sandbox1",
	})
	assert.Check(t, is.Equal("/Cubes?$select=Name&!sandbox=Sandbox1", url))
}

func TestVerifyVersion(t *testing.T) {
	testCases := []struct {
		required string
		actual   string
		expected bool
	}{
		{"11.4", "11.8.01500.2", true},
		{"11.4", "11.2.00000.27", false},
		{"11.8.015", "11.8.01500.2", true},
		{"11.8.015", "11.8.00900.1", false},
		{"12", "12.0.0", true},
	}
	for _, tc := range testCases {
		assert.Check(t, is.Equal(tc.expected, VerifyVersion(tc.required, tc.actual)),
			"required %s actual %s", tc.required, tc.actual)
	}
}

func TestIntegerizeVersion(t *testing.T) {
	assert.Check(t, is.Equal(1180, IntegerizeVersion("11.8.40000.5", 4)))
	assert.Check(t, is.Equal(1100, IntegerizeVersion("11", 4)))
}
