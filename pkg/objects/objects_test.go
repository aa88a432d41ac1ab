/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestCubeBodyBindsDimensions(t *testing.T) {
	cube := NewCube("plan_BudgetPlan", []string{"plan_version", "plan_time"}, "SKIPCHECK;")
	body, err := cube.Body()
	assert.NilError(t, err)

	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("plan_BudgetPlan", parsed["Name"]))
	assert.Check(t, is.Equal("SKIPCHECK;", parsed["Rules"]))

	bindings := parsed["Dimensions@odata.bind"].([]interface{})
	assert.Check(t, is.Len(bindings, 2))
	assert.Check(t, is.Equal("Dimensions('plan_version')", bindings[0]))
}

func TestCubeFromJSON(t *testing.T) {
	raw := `{"Name":"plan_BudgetPlan","Rules":"",
		"Dimensions":[{"Name":"plan_version"},{"Name":"plan_time"}]}`
	cube, err := CubeFromJSON([]byte(raw))
	assert.NilError(t, err)
	assert.Check(t, is.Equal("plan_BudgetPlan", cube.Name))
	assert.Check(t, is.DeepEqual([]string{"plan_version", "plan_time"}, cube.Dimensions))
	assert.Check(t, !cube.HasRules())
}

func TestHierarchyGraph(t *testing.T) {
	h := NewHierarchy("Region", "Region", []Element{
		NewElement("World", ElementTypeConsolidated),
		NewElement("Europe", ElementTypeConsolidated),
		NewElement("Germany", ElementTypeNumeric),
		NewElement("France", ElementTypeNumeric),
	}, nil)
	h.AddEdge("World", "Europe", 1)
	h.AddEdge("Europe", "Germany", 1)
	h.AddEdge("Europe", "France", 1)

	descendants := h.Descendants("World")
	sort.Strings(descendants)
	assert.Check(t, is.DeepEqual([]string{"Europe", "France", "Germany"}, descendants))

	ancestors := h.Ancestors("Germany")
	sort.Strings(ancestors)
	assert.Check(t, is.DeepEqual([]string{"Europe", "World"}, ancestors))

	assert.Check(t, h.Contains("ger many"))

	h.RemoveElement("Europe")
	assert.Check(t, !h.Contains("Europe"))
	assert.Check(t, is.Len(h.Edges, 0))
}

func TestDimensionBodySkipsLeaves(t *testing.T) {
	d := NewDimension("Region",
		NewHierarchy("Region", "Region", nil, nil),
		NewHierarchy("Leaves", "Region", nil, nil))
	body, err := d.Body(false)
	assert.NilError(t, err)

	var parsed struct {
		Name        string `json:"Name"`
		UniqueName  string `json:"UniqueName"`
		Hierarchies []struct {
			Name string `json:"Name"`
		} `json:"Hierarchies"`
	}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("[Region]", parsed.UniqueName))
	assert.Check(t, is.Len(parsed.Hierarchies, 1))
	assert.Check(t, is.Equal("Region", parsed.Hierarchies[0].Name))
}

func TestStaticSubsetBodyBindsElements(t *testing.T) {
	subset := NewSubset("Top", "Region", "", "", []string{"Germany", "France"})
	assert.Check(t, subset.IsStatic())

	body, err := subset.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("Dimensions('Region')/Hierarchies('Region')", parsed["Hierarchy@odata.bind"]))
	bindings := parsed["Elements@odata.bind"].([]interface{})
	assert.Check(t, is.Len(bindings, 2))
	assert.Check(t, is.Equal(
		"Dimensions('Region')/Hierarchies('Region')/Elements('Germany')", bindings[0]))
}

func TestDynamicSubsetBodyCarriesExpression(t *testing.T) {
	subset := NewSubset("All", "Region", "", "{TM1SUBSETALL([Region])}", nil)
	assert.Check(t, subset.IsDynamic())

	body, err := subset.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("{TM1SUBSETALL([Region])}", parsed["Expression"]))
	_, hasElements := parsed["Elements@odata.bind"]
	assert.Check(t, !hasElements)
}

func TestAnonymousSubsetBodyHasNoName(t *testing.T) {
	subset := NewAnonymousSubset("Region", "", "", []string{"Germany"})
	body, err := subset.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	_, hasName := parsed["Name"]
	assert.Check(t, !hasName)
}

func TestProcessBodyAddsGeneratedStatementsGuard(t *testing.T) {
	process := NewProcess("load_budget")
	process.PrologProcedure = "sTest = 'abc';"
	process.AddParameter("pVersion", "version to load", "actual")
	process.AddParameter("pFactor", "scaling factor", 1.5)

	body, err := process.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))

	prolog := parsed["PrologProcedure"].(string)
	assert.Check(t, strings.HasPrefix(prolog, BeginGeneratedStatements))
	assert.Check(t, strings.HasSuffix(prolog, "sTest = 'abc';"))

	parameters := parsed["Parameters"].([]interface{})
	first := parameters[0].(map[string]interface{})
	second := parameters[1].(map[string]interface{})
	assert.Check(t, is.Equal("String", first["Type"]))
	assert.Check(t, is.Equal("Numeric", second["Type"]))

	dataSource := parsed["DataSource"].(map[string]interface{})
	assert.Check(t, is.Equal("None", dataSource["Type"]))
}

func TestAddGeneratedStringToCodeIsIdempotent(t *testing.T) {
	guarded := AddGeneratedStringToCode("x = 1;")
	assert.Check(t, is.Equal(guarded, AddGeneratedStringToCode(guarded)))
}

func TestChoreStartTimeRoundTrip(t *testing.T) {
	startTime, err := ParseChoreStartTime("2016-09-25T20:25:00Z")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(2016, startTime.Year))
	assert.Check(t, is.Equal(25, startTime.Minute))
	assert.Check(t, is.Equal("2016-09-25T20:25:00Z", startTime.String()))

	withOffset, err := ParseChoreStartTime("2016-09-25T20:25:00+01:00")
	assert.NilError(t, err)
	assert.Check(t, is.Equal("+01:00", withOffset.TZOffset))
	assert.Check(t, is.Equal("2016-09-25T20:25:00+01:00", withOffset.String()))
}

func TestChoreFrequencyRoundTrip(t *testing.T) {
	frequency, err := ParseChoreFrequency("P01DT02H30M00S")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(1, frequency.Days))
	assert.Check(t, is.Equal(30, frequency.Minutes))
	assert.Check(t, is.Equal("P01DT02H30M00S", frequency.String()))
}

func TestChoreBody(t *testing.T) {
	chore := &Chore{
		Name:      "nightly",
		StartTime: ChoreStartTime{Year: 2024, Month: 1, Day: 15, Hour: 2},
		Frequency: ChoreFrequency{Days: 1},
		Active:    true,
	}
	chore.AddTask("load_budget", []ChoreTaskParameter{{Name: "pVersion", Value: "actual"}})

	body, err := chore.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("SingleCommit", parsed["ExecutionMode"]))
	assert.Check(t, is.Equal("P01DT00H00M00S", parsed["Frequency"]))

	tasks := parsed["Tasks"].([]interface{})
	task := tasks[0].(map[string]interface{})
	assert.Check(t, is.Equal("Processes('load_budget')", task["Process@odata.bind"]))
}

func TestUserAdminGroupPromotesType(t *testing.T) {
	user := NewUser("Marius", "Budgeting")
	assert.Check(t, is.Equal(UserTypeUser, user.Type))

	user.AddGroup("AD MIN")
	assert.Check(t, is.Equal(UserTypeAdmin, user.Type))
	assert.Check(t, user.IsMemberOf("admin"))
}

func TestUserBodyBindsGroups(t *testing.T) {
	user := NewUser("Marius", "Budgeting")
	body, err := user.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("User", parsed["Type"]))
	bindings := parsed["Groups@odata.bind"].([]interface{})
	assert.Check(t, is.Equal("Groups('Budgeting')", bindings[0]))
}

func TestNativeViewBody(t *testing.T) {
	view := NewNativeView("plan_BudgetPlan", "budget input")
	view.AddColumn(ViewAxisSelection{DimensionName: "plan_time", SubsetName: "quarters"})
	view.AddRow(ViewAxisSelection{DimensionName: "plan_department",
		Subset: NewAnonymousSubset("plan_department", "", "", []string{"105"})})
	view.AddTitle(ViewTitleSelection{
		ViewAxisSelection: ViewAxisSelection{DimensionName: "plan_version", SubsetName: "all"},
		Selected:          "FY 2004 Budget",
	})
	view.SuppressEmptyCells(true)

	body, err := view.Body()
	assert.NilError(t, err)
	var parsed map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("ibm.tm1.api.v1.NativeView", parsed["@odata.type"]))
	assert.Check(t, is.Equal(true, parsed["SuppressEmptyRows"]))
	assert.Check(t, is.Equal("0.#########", parsed["FormatString"]))

	titles := parsed["Titles"].([]interface{})
	title := titles[0].(map[string]interface{})
	assert.Check(t, is.Equal(
		"Dimensions('plan_version')/Hierarchies('plan_version')/Elements('FY 2004 Budget')",
		title["Selected@odata.bind"]))
}

func TestNativeViewMDX(t *testing.T) {
	view := NewNativeView("plan_BudgetPlan", "budget input")
	view.AddColumn(ViewAxisSelection{DimensionName: "plan_time", SubsetName: "quarters"})
	view.AddRow(ViewAxisSelection{DimensionName: "plan_department",
		Subset: NewAnonymousSubset("plan_department", "", "", []string{"105", "110"})})

	mdx := view.MDX()
	assert.Check(t, is.Contains(mdx, `TM1SUBSETTOSET([plan_time].[plan_time],"quarters")`))
	assert.Check(t, is.Contains(mdx, "[plan_department].[plan_department].[105]"))
	assert.Check(t, is.Contains(mdx, "FROM [plan_BudgetPlan]"))
}

func TestMDXViewBody(t *testing.T) {
	view := NewMDXView("plan_BudgetPlan", "top sellers", "SELECT {} ON 0 FROM [plan_BudgetPlan]")
	body, err := view.Body()
	assert.NilError(t, err)
	var parsed map[string]string
	assert.NilError(t, json.Unmarshal([]byte(body), &parsed))
	assert.Check(t, is.Equal("ibm.tm1.api.v1.MDXView", parsed["@odata.type"]))
}

func TestNameSet(t *testing.T) {
	set := NewNameSet("FY 2004 Budget")
	assert.Check(t, set.Contains("fy2004budget"))
	set.Remove("FY2004BUDGET")
	assert.Check(t, is.Equal(0, set.Len()))
}

func TestElementTypeJSONRoundTrip(t *testing.T) {
	var element Element
	raw := `{"Name":"Germany","Type":"Numeric"}`
	assert.NilError(t, json.Unmarshal([]byte(raw), &element))
	assert.Check(t, is.Equal(ElementTypeNumeric, element.Type))

	data, err := json.Marshal(element.Type)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(`"Numeric"`, string(data)))
}
