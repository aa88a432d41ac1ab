/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/cubewise-code/tm1go/pkg/objects"
	"github.com/cubewise-code/tm1go/pkg/rest"
)

// newServiceClient builds a connected client against a test server. The
// login probe is answered here so tests only handle their own routes.
func newServiceClient(t *testing.T, handler http.HandlerFunc) *rest.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/Configuration/ProductVersion/$value") {
			w.Write([]byte("11.8.01500.2"))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	assert.NilError(t, err)
	port, err := strconv.Atoi(u.Port())
	assert.NilError(t, err)
	client, err := rest.New(rest.Config{
		Address:  u.Hostname(),
		Port:     port,
		User:     "admin",
		Password: "apple",
	})
	assert.NilError(t, err)
	return client
}

func TestWriteValuesPostsUpdateDocuments(t *testing.T) {
	var body, query string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.Contains(r.URL.Path, "tm1.Update") {
			data, _ := io.ReadAll(r.Body)
			body = string(data)
			query = r.URL.RawQuery
		}
		w.Write([]byte(`{}`))
	})

	cells := NewCellService(client)
	err := cells.WriteValues(context.Background(), "Sales",
		[]CellValue{{Coordinates: []string{"Europe", "Jan"}, Value: 42.5}},
		[]string{"Region", "Month"}, "scenario1", "")
	assert.NilError(t, err)

	assert.Check(t, is.Contains(body, `"Tuple@odata.bind"`))
	assert.Check(t, is.Contains(body, `Dimensions('Region')/Hierarchies('Region')/Elements('Europe')`))
	assert.Check(t, is.Contains(body, `Dimensions('Month')/Hierarchies('Month')/Elements('Jan')`))
	assert.Check(t, is.Contains(body, `"Value":42.5`))
	assert.Check(t, is.Contains(query, "!sandbox=scenario1"))
}

func TestExecuteMDXExtractsCellCoordinates(t *testing.T) {
	deleted := false
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/ExecuteMDX"):
			w.Write([]byte(`{"ID":"C1"}`))
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Cellsets('C1')"):
			w.Write([]byte(`{
				"Cube":{"Name":"Sales","Dimensions":[{"Name":"Scenario"},{"Name":"Month"}]},
				"Axes":[
					{"Ordinal":0,"Tuples":[
						{"Members":[{"Name":"Actual"}]},
						{"Members":[{"Name":"Budget"}]}]},
					{"Ordinal":1,"Tuples":[
						{"Members":[{"Name":"Jan"}]}]}
				],
				"Cells":[
					{"Ordinal":0,"Value":10},
					{"Ordinal":1,"Value":20}
				]}`))
		case r.Method == http.MethodDelete && strings.Contains(r.URL.Path, "/Cellsets('C1')"):
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{}`))
		}
	})

	cells := NewCellService(client)
	cellset, err := cells.ExecuteMDX(context.Background(),
		"SELECT {[Scenario].Members} ON 0, {[Month].[Jan]} ON 1 FROM [Sales]", ExtractOptions{})
	assert.NilError(t, err)

	assert.Check(t, is.Equal("Sales", cellset.Cube))
	assert.Check(t, is.Len(cellset.Cells, 2))
	assert.Check(t, is.DeepEqual([]string{"Actual", "Jan"}, cellset.Cells[0].Coordinates))
	assert.Check(t, is.DeepEqual([]string{"Budget", "Jan"}, cellset.Cells[1].Coordinates))
	assert.Check(t, is.Equal(float64(20), cellset.Cells[1].Value))
	assert.Check(t, deleted)
}

func TestWriteAsyncReportsPartialFailure(t *testing.T) {
	var mu sync.Mutex
	patched := 0
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/ExecuteMDX"):
			data, _ := io.ReadAll(r.Body)
			if strings.Contains(string(data), "[Bad]") {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"message":"element not found"}}`))
				return
			}
			w.Write([]byte(`{"ID":"C-ok"}`))
		case r.Method == http.MethodPatch:
			mu.Lock()
			patched++
			mu.Unlock()
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	cells := NewCellService(client)
	err := cells.WriteAsync(context.Background(), "Sales",
		[]CellValue{
			{Coordinates: []string{"Good", "Jan"}, Value: 1.0},
			{Coordinates: []string{"Bad", "Jan"}, Value: 2.0},
		},
		WriteOptions{Dimensions: []string{"Region", "Month"}, SliceSize: 1})

	var partial *rest.WritePartialFailureError
	assert.Assert(t, errors.As(err, &partial))
	assert.Check(t, is.Equal(2, partial.Attempts))
	assert.Check(t, is.Len(partial.Statuses, 1))
	assert.Check(t, is.Equal(1, patched))
}

func TestExecuteTICodeCreatesAndRemovesTransientProcess(t *testing.T) {
	var createdBody, deletedPath string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/Processes"):
			data, _ := io.ReadAll(r.Body)
			createdBody = string(data)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "tm1.ExecuteWithReturn"):
			w.Write([]byte(`{"ProcessExecuteStatusCode":"CompletedSuccessfully"}`))
		case r.Method == http.MethodDelete:
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{}`))
		}
	})

	processes := NewProcessService(client)
	result, err := processes.ExecuteTICode(context.Background(),
		[]string{"CubeSaveData('Sales');"}, nil)
	assert.NilError(t, err)

	assert.Check(t, result.Successful())
	assert.Check(t, is.Contains(createdBody, `"Name":"tm1go.`))
	assert.Check(t, is.Contains(createdBody, "CubeSaveData('Sales');"))
	assert.Check(t, is.Contains(deletedPath, "/Processes('tm1go."))
}

func TestCubeGetDropsSandboxesDimension(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Name":"Sales","Dimensions":[
			{"Name":"Region"},{"Name":"Sandboxes"},{"Name":"Month"}]}`))
	})

	cubes := NewCubeService(client)
	cube, err := cubes.Get(context.Background(), "Sales")
	assert.NilError(t, err)

	assert.Check(t, is.DeepEqual([]string{"Region", "Month"}, cube.Dimensions))
}

func TestDynamicSubsetElementNamesAreEvaluatedOnServer(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Subsets('Top')"):
			w.Write([]byte(`{"Name":"Top","Expression":"{TM1FILTERBYLEVEL({[Region].Members},0)}",
				"Hierarchy":{"Name":"Region","Dimension":{"Name":"Region"}}}`))
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/ExecuteMDXSetExpression"):
			w.Write([]byte(`{"Tuples":[
				{"Members":[{"Name":"Europe"}]},
				{"Members":[{"Name":"Asia"}]}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	subsets := NewSubsetService(client)
	names, err := subsets.GetElementNames(context.Background(), "Region", "Region", "Top", false)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual([]string{"Europe", "Asia"}, names))
}

func TestChoreUpdateWrapsChangesInDeactivateActivate(t *testing.T) {
	var calls []string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Chores('Nightly')") {
			w.Write([]byte(`{"Name":"Nightly","StartTime":"2024-01-01T03:00:00Z",
				"DSTSensitivity":false,"Active":true,"ExecutionMode":"SingleCommit",
				"Frequency":"P01DT00H00M00S",
				"Tasks":[{"Step":0,"Process":{"Name":"OldLoad"},"Parameters":[]}]}`))
			return
		}
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	})

	startTime, err := objects.ParseChoreStartTime("2024-01-01T03:00:00Z")
	assert.NilError(t, err)
	frequency, err := objects.ParseChoreFrequency("P01DT00H00M00S")
	assert.NilError(t, err)
	chore := &objects.Chore{
		Name:      "Nightly",
		StartTime: startTime,
		Frequency: frequency,
		Active:    true,
	}
	chore.AddTask("NewLoad", nil)
	chore.AddTask("Cleanup", nil)

	chores := NewChoreService(client)
	assert.NilError(t, chores.Update(context.Background(), chore))

	assert.Check(t, is.DeepEqual([]string{
		"POST /api/v1/Chores('Nightly')/tm1.Deactivate",
		"PATCH /api/v1/Chores('Nightly')",
		"PATCH /api/v1/Chores('Nightly')/Tasks(0)",
		"POST /api/v1/Chores('Nightly')/Tasks",
		"POST /api/v1/Chores('Nightly')/tm1.Activate",
	}, calls))
}

func TestUpdateUserDropsObsoleteGroupMemberships(t *testing.T) {
	var removals []string
	patchedUser := false
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/ActiveUser/Groups"):
			w.Write([]byte(`{"value":[{"Name":"ADMIN"}]}`))
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Users('Bob')"):
			w.Write([]byte(`{"Name":"Bob","Type":"User",
				"Groups":[{"Name":"Old"},{"Name":"Keep"}]}`))
		case r.Method == http.MethodDelete:
			removals = append(removals, r.URL.Query().Get("$id"))
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPatch:
			patchedUser = true
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	user := objects.NewUser("Bob", "Keep")
	security := NewSecurityService(client)
	assert.NilError(t, security.UpdateUser(context.Background(), user))

	assert.Check(t, is.DeepEqual([]string{"Groups('Old')"}, removals))
	assert.Check(t, patchedUser)
}

func TestViewGetDistinguishesMDXViews(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"@odata.type":"#ibm.tm1.api.v1.MDXView",
			"Name":"query","MDX":"SELECT {[Month].Members} ON 0 FROM [Sales]"}`))
	})

	views := NewViewService(client)
	view, err := views.Get(context.Background(), "Sales", "query", false)
	assert.NilError(t, err)

	mdxView, ok := view.(*objects.MDXView)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal("query", mdxView.Name))
	assert.Check(t, is.Contains(mdxView.MDX, "FROM [Sales]"))
}

func TestExistsTreatsNotFoundAsFalse(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"not found"}}`))
	})

	cubes := NewCubeService(client)
	exists, err := cubes.ExistsByName(context.Background(), "NoSuchCube")
	assert.NilError(t, err)
	assert.Check(t, !exists)
}

func TestSetLocalStartTimePostsServerLocalAction(t *testing.T) {
	var calls []string
	var actionBody string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Chores('Nightly')") {
			w.Write([]byte(`{"Name":"Nightly","StartTime":"2024-01-01T03:00:00Z",
				"DSTSensitivity":false,"Active":true,"ExecutionMode":"SingleCommit",
				"Frequency":"P01DT00H00M00S","Tasks":[]}`))
			return
		}
		if strings.Contains(r.URL.Path, "tm1.SetServerLocalStartTime") {
			data, _ := io.ReadAll(r.Body)
			actionBody = string(data)
		}
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	})

	startTime, err := objects.ParseChoreStartTime("2024-02-03T04:05:06Z")
	assert.NilError(t, err)
	chores := NewChoreService(client)
	assert.NilError(t, chores.SetLocalStartTime(context.Background(), "Nightly", startTime))

	assert.Check(t, is.DeepEqual([]string{
		"POST /api/v1/Chores('Nightly')/tm1.Deactivate",
		"POST /api/v1/Chores('Nightly')/tm1.SetServerLocalStartTime",
		"POST /api/v1/Chores('Nightly')/tm1.Activate",
	}, calls))
	// the date is unpadded, the time of day padded
	assert.Check(t, is.Contains(actionBody, `"StartDate":"2024-2-3"`))
	assert.Check(t, is.Contains(actionBody, `"StartTime":"04:05:06"`))
}

func TestCellCoordinatesFollowCubeDimensionOrder(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/ExecuteMDX"):
			w.Write([]byte(`{"ID":"C2"}`))
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Cellsets('C2')"):
			w.Write([]byte(`{
				"Cube":{"Name":"Sales","Dimensions":[{"Name":"Region"},{"Name":"Month"}]},
				"Axes":[
					{"Ordinal":0,"Tuples":[
						{"Members":[{"Name":"Jan","UniqueName":"[Month].[Month].[Jan]"}]}]},
					{"Ordinal":1,"Tuples":[
						{"Members":[{"Name":"Europe","UniqueName":"[Region].[Region].[Europe]"}]}]}
				],
				"Cells":[{"Ordinal":0,"Value":42}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	cells := NewCellService(client)
	// Month is on columns and Region on rows, the opposite of the cube order
	cellset, err := cells.ExecuteMDX(context.Background(),
		"SELECT {[Month].[Jan]} ON 0, {[Region].[Europe]} ON 1 FROM [Sales]", ExtractOptions{})
	assert.NilError(t, err)

	assert.Check(t, is.Len(cellset.Cells, 1))
	assert.Check(t, is.DeepEqual([]string{"Europe", "Jan"}, cellset.Cells[0].Coordinates))
}

func TestPollExecuteWithReturnReportsRunningAndFinished(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/_async('running')"):
			w.Write([]byte(""))
		case strings.Contains(r.URL.Path, "/_async('finished')"):
			w.Header().Set("asyncresult", "200")
			w.Write([]byte(`{"ProcessExecuteStatusCode":"CompletedSuccessfully",
				"ErrorLogFile":null}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	processes := NewProcessService(client)
	result, err := processes.PollExecuteWithReturn(context.Background(), "running")
	assert.NilError(t, err)
	assert.Check(t, is.Nil(result))

	result, err = processes.PollExecuteWithReturn(context.Background(), "finished")
	assert.NilError(t, err)
	assert.Assert(t, result != nil)
	assert.Check(t, result.Successful())
}

func TestGetErrorLogFilenamesChecksProcessAndFilters(t *testing.T) {
	var query url.Values
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/Processes('Load')"):
			w.Write([]byte(`{"Name":"Load"}`))
		case strings.Contains(r.URL.Path, "/ErrorLogFiles"):
			query = r.URL.Query()
			w.Write([]byte(`{"value":[{"Filename":"TM1ProcessError_Load.log"}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	processes := NewProcessService(client)
	filenames, err := processes.GetErrorLogFilenames(context.Background(), "Load", 5, true)
	assert.NilError(t, err)

	assert.Check(t, is.DeepEqual([]string{"TM1ProcessError_Load.log"}, filenames))
	assert.Check(t, is.Equal("contains(tolower(Filename),'load')", query.Get("$filter")))
	assert.Check(t, is.Equal("5", query.Get("$top")))
	assert.Check(t, is.Equal("Filename desc", query.Get("$orderby")))
}

func TestIsBalancedReadsStructureValue(t *testing.T) {
	structure := "0"
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/Structure/$value") {
			w.Write([]byte(structure))
			return
		}
		w.Write([]byte(`{}`))
	})

	hierarchies := NewHierarchyService(client)
	balanced, err := hierarchies.IsBalanced(context.Background(), "Region", "Region")
	assert.NilError(t, err)
	assert.Check(t, balanced)

	structure = "2"
	balanced, err = hierarchies.IsBalanced(context.Background(), "Region", "Region")
	assert.NilError(t, err)
	assert.Check(t, !balanced)
}

func TestDeleteElementsFromStaticSubsetClearsReferences(t *testing.T) {
	var deletedPath string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletedPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{}`))
	})

	subsets := NewSubsetService(client)
	err := subsets.DeleteElementsFromStaticSubset(context.Background(),
		"Region", "Region", "Top", false)
	assert.NilError(t, err)

	assert.Check(t, is.Equal(
		"/api/v1/Dimensions('Region')/Hierarchies('Region')/Subsets('Top')/Elements/$ref",
		deletedPath))
}

func TestGetMembersUnderConsolidationWalksComponentTree(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Name":"Total","Type":"Consolidated","Components":[
			{"Name":"Europe","Type":"Consolidated","Components":[
				{"Name":"France","Type":"Numeric"},
				{"Name":"Germany","Type":"Numeric"}]},
			{"Name":"Asia","Type":"Numeric"}]}`))
	})

	elements := NewElementService(client)
	members, err := elements.GetMembersUnderConsolidation(context.Background(),
		"Region", "Region", "Total", 0, false)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual([]string{"Europe", "France", "Germany", "Asia"}, members))

	leaves, err := elements.GetMembersUnderConsolidation(context.Background(),
		"Region", "Region", "Total", 0, true)
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual([]string{"France", "Germany", "Asia"}, leaves))
}

func TestCloseAllSkipsOwnAndSystemSessions(t *testing.T) {
	var closed []string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/ActiveUser/Groups"):
			w.Write([]byte(`{"value":[{"Name":"ADMIN"}]}`))
		case strings.HasSuffix(r.URL.Path, "/ActiveSession"):
			w.Write([]byte(`{"ID":1,"Context":"TM1go","User":{"Name":"Admin"}}`))
		case strings.HasSuffix(r.URL.Path, "/Sessions"):
			w.Write([]byte(`{"value":[
				{"ID":1,"Context":"TM1go","User":{"Name":"ad min"}},
				{"ID":2,"Context":"Excel","User":{"Name":"Bob"}},
				{"ID":3,"Context":"System"}]}`))
		case strings.Contains(r.URL.Path, "tm1.Close"):
			closed = append(closed, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{}`))
		}
	})

	sessions := NewSessionService(client)
	closedSessions, err := sessions.CloseAll(context.Background())
	assert.NilError(t, err)

	assert.Check(t, is.Len(closedSessions, 1))
	assert.Check(t, is.Equal("Bob", closedSessions[0].UserName))
	assert.Check(t, is.DeepEqual([]string{"/api/v1/Sessions(2)/tm1.Close"}, closed))
}

func TestApplicationRenameMovesSuffixedEntry(t *testing.T) {
	var movePath, moveBody string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "tm1.Move") {
			movePath = r.URL.Path
			data, _ := io.ReadAll(r.Body)
			moveBody = string(data)
		}
		w.Write([]byte(`{}`))
	})

	applications := NewApplicationService(client)
	err := applications.Rename(context.Background(), "Finance",
		objects.ApplicationTypeCube, "Sales Report", "Sales", false)
	assert.NilError(t, err)

	assert.Check(t, is.Equal(
		"/api/v1/Contents('Applications')/Contents('Finance')/Contents('Sales Report.cube')/tm1.Move",
		movePath))
	assert.Check(t, is.Contains(moveBody, `"Name":"Sales"`))
}

func TestApplicationGetResolvesViewReference(t *testing.T) {
	var query string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"Name":"Top10.view","View":{"Name":"Top10","Cube":{"Name":"Sales"}}}`))
	})

	applications := NewApplicationService(client)
	app, err := applications.Get(context.Background(), "Finance",
		objects.ApplicationTypeView, "Top10", false)
	assert.NilError(t, err)

	assert.Check(t, is.Contains(query, "View($select=Name;$expand=Cube($select=Name))"))
	assert.Check(t, is.Equal("Top10", app.ViewName))
	assert.Check(t, is.Equal("Sales", app.CubeName))
}

func TestAuditLogAndPerformanceMonitorPatchStaticConfiguration(t *testing.T) {
	var patchBody string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/ActiveUser/Groups"):
			w.Write([]byte(`{"value":[{"Name":"ADMIN"}]}`))
		case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/StaticConfiguration"):
			data, _ := io.ReadAll(r.Body)
			patchBody = string(data)
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	server := NewServerService(client)
	assert.NilError(t, server.StartPerformanceMonitor(context.Background()))
	assert.Check(t, is.Contains(patchBody, `"PerformanceMonitorOn":true`))

	assert.NilError(t, server.DeactivateAuditLog(context.Background()))
	assert.Check(t, is.Contains(patchBody, `"AuditLog":{"Enable":false}`))
}

func TestGetReadOnlyUsersSkipsFalsyFlags(t *testing.T) {
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/ExecuteMDX"):
			w.Write([]byte(`{"ID":"C3"}`))
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/Cellsets('C3')"):
			w.Write([]byte(`{
				"Cube":{"Name":"}ClientProperties",
					"Dimensions":[{"Name":"}Clients"},{"Name":"}ClientProperties"}]},
				"Axes":[
					{"Ordinal":0,"Tuples":[
						{"Members":[{"Name":"ReadOnlyUser","UniqueName":"[}ClientProperties].[}ClientProperties].[ReadOnlyUser]"}]}]},
					{"Ordinal":1,"Tuples":[
						{"Members":[{"Name":"Alice","UniqueName":"[}Clients].[}Clients].[Alice]"}]},
						{"Members":[{"Name":"Bob","UniqueName":"[}Clients].[}Clients].[Bob]"}]}]}
				],
				"Cells":[{"Ordinal":0,"Value":1},{"Ordinal":1,"Value":0}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	security := NewSecurityService(client)
	users, err := security.GetReadOnlyUsers(context.Background())
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual([]string{"Alice"}, users))
}

func TestAddEdgesPostsBatch(t *testing.T) {
	var postPath, postBody string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			postPath = r.URL.Path
			data, _ := io.ReadAll(r.Body)
			postBody = string(data)
		}
		w.Write([]byte(`{}`))
	})

	elements := NewElementService(client)
	err := elements.AddEdges(context.Background(), "Region", "Region",
		map[objects.Edge]float64{{Parent: "Europe", Component: "France"}: 1})
	assert.NilError(t, err)

	assert.Check(t, is.Equal(
		"/api/v1/Dimensions('Region')/Hierarchies('Region')/Edges", postPath))
	assert.Check(t, is.Contains(postBody, `"ParentName":"Europe"`))
	assert.Check(t, is.Contains(postBody, `"ComponentName":"France"`))
	assert.Check(t, is.Contains(postBody, `"Weight":1`))
}

func TestSearchSubsetInNativeViewsFiltersAxes(t *testing.T) {
	var queries []string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/Cubes") {
			query, err := url.QueryUnescape(r.URL.RawQuery)
			assert.NilError(t, err)
			queries = append(queries, query)
			w.Write([]byte(`{"value":[{"Name":"Sales",
				"PrivateViews":[{"Name":"My Regions","Rows":[],"Columns":[],"Titles":[]}],
				"Views":[{"Name":"By Region","Rows":[],"Columns":[],"Titles":[]}]}]}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	views := NewViewService(client)
	privateViews, publicViews, err := views.SearchSubsetInNativeViews(context.Background(),
		"Region", "Top", "", false)
	assert.NilError(t, err)

	// one lookup per view collection
	assert.Check(t, is.Len(queries, 2))
	assert.Check(t, is.Contains(queries[0], "PrivateViews($filter=isof(tm1.NativeView)"))
	assert.Check(t, is.Contains(queries[0],
		"replace(tolower(r/Subset/Name),' ','') eq 'top'"))
	assert.Check(t, is.Contains(queries[0],
		"replace(tolower(t/Subset/Hierarchy/Dimension/Name),' ','') eq 'region'"))
	assert.Check(t, is.Contains(queries[0], "Elements($select=Name;$top=0)"))
	assert.Check(t, is.Len(privateViews, 1))
	assert.Check(t, is.Len(publicViews, 1))
	assert.Check(t, is.Equal("By Region", publicViews[0].Name))
}

func TestGetGroupsFromUserResolvesActualName(t *testing.T) {
	var groupsPath string
	client := newServiceClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/Groups") {
			groupsPath = r.URL.Path
			w.Write([]byte(`{"value":[{"Name":"ADMIN"},{"Name":"Planners"}]}`))
			return
		}
		w.Write([]byte(`{"value":[{"Name":"Bob Smith"}]}`))
	})

	security := NewSecurityService(client)
	groups, err := security.GetGroupsFromUser(context.Background(), "bobsmith")
	assert.NilError(t, err)

	assert.Check(t, is.Equal("/api/v1/Users('Bob Smith')/Groups", groupsPath))
	assert.Check(t, is.DeepEqual([]string{"ADMIN", "Planners"}, groups))
}
