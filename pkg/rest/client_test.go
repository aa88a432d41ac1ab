/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// newTestClient builds a client pointed at the given test server
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	u, err := url.Parse(server.URL)
	assert.NilError(t, err)
	port, err := strconv.Atoi(u.Port())
	assert.NilError(t, err)

	client, err := New(Config{
		Address:  u.Hostname(),
		Port:     port,
		User:     "admin",
		Password: "apple",
	})
	assert.NilError(t, err)
	return client
}

func TestConnectStoresVersionAndDropsAuthorization(t *testing.T) {
	var authHeaders []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/Configuration/ProductVersion/$value":
			http.SetCookie(w, &http.Cookie{Name: "TM1SessionId", Value: "s-123"})
			w.Write([]byte("11.8.01500.2"))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()
	assert.NilError(t, client.Connect(ctx))

	assert.Check(t, is.Equal("11.8.01500.2", client.Version()))
	assert.Check(t, is.Equal("s-123", client.SessionID()))
	assert.Check(t, strings.HasPrefix(authHeaders[0], "Basic "))

	_, err := client.GET(ctx, "/Cubes")
	assert.NilError(t, err)
	// after login the session cookie carries authentication
	assert.Check(t, is.Equal("", authHeaders[len(authHeaders)-1]))
}

func TestDefaultHeaders(t *testing.T) {
	var contentType, sessionContext, userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/Cubes") {
			contentType = r.Header.Get("Content-Type")
			sessionContext = r.Header.Get("TM1-SessionContext")
			userAgent = r.Header.Get("User-Agent")
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GET(context.Background(), "/Cubes")
	assert.NilError(t, err)

	assert.Check(t, is.Equal("application/json; odata.streaming=true; charset=utf-8", contentType))
	assert.Check(t, is.Equal("TM1go", sessionContext))
	assert.Check(t, is.Equal("TM1go", userAgent))
}

func TestNonSuccessStatusYieldsRestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/$value") {
			w.Write([]byte("11.8.01500.2"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"Cube not found"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.GET(context.Background(), "/Cubes('unknown')")

	var restErr *RestError
	assert.Assert(t, errors.As(err, &restErr))
	assert.Check(t, is.Equal(http.StatusNotFound, restErr.StatusCode))
	assert.Check(t, is.Contains(restErr.Error(), "Status Code: 404"))
	assert.Check(t, IsNotFound(err))
}

func TestUnauthorizedTriggersOneReconnect(t *testing.T) {
	logins := 0
	rejected := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/$value") {
			logins++
			w.Write([]byte("11.8.01500.2"))
			return
		}
		if !rejected {
			rejected = true
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"value":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	resp, err := client.GET(context.Background(), "/Cubes")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(2, logins))
	assert.Check(t, is.Equal(`{"value":[]}`, resp.Text()))
}

func TestAdminFlagsRetryAfterFailedGroupRead(t *testing.T) {
	groupReads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/$value"):
			w.Write([]byte("11.8.01500.2"))
		case strings.HasSuffix(r.URL.Path, "/ActiveUser/Groups"):
			groupReads++
			if groupReads == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"value":[{"Name":"ADMIN"}]}`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	// the failed read must not pin the flags to false
	assert.Check(t, !client.IsAdmin(ctx))
	assert.Check(t, client.IsAdmin(ctx))
	assert.Check(t, client.IsOpsAdmin(ctx))
	// the successful read is cached
	assert.Check(t, is.Equal(2, groupReads))
}

func TestAsyncRequestPollsUntilCompletion(t *testing.T) {
	polls := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/$value"):
			w.Write([]byte("11.8.01500.2"))
		case strings.Contains(r.URL.Path, "/_async('42')"):
			polls++
			if polls < 2 {
				w.Write([]byte(""))
				return
			}
			w.Header().Set("asyncresult", "200")
			w.Write([]byte(`{"value":[{"Name":"plan_BudgetPlan"}]}`))
		default:
			assert.Check(t, is.Equal("respond-async", r.Header.Get("Prefer")))
			w.Header().Set("Location", server.URL+"/api/v1/_async('42')")
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	assert.NilError(t, err)
	port, err := strconv.Atoi(u.Port())
	assert.NilError(t, err)
	client, err := New(Config{
		Address:           u.Hostname(),
		Port:              port,
		User:              "admin",
		Password:          "apple",
		AsyncRequestsMode: true,
	})
	assert.NilError(t, err)

	resp, err := client.GET(context.Background(), "/Cubes")
	assert.NilError(t, err)
	assert.Check(t, is.Equal(2, polls))
	assert.Check(t, is.Contains(resp.Text(), "plan_BudgetPlan"))
}

func TestAdoptExistingSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("TM1SessionId")
		assert.NilError(t, err)
		assert.Check(t, is.Equal("existing-session", cookie.Value))
		w.Write([]byte(`{"value":[]}`))
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	assert.NilError(t, err)
	port, err := strconv.Atoi(u.Port())
	assert.NilError(t, err)
	client, err := New(Config{
		Address:   u.Hostname(),
		Port:      port,
		SessionID: "existing-session",
	})
	assert.NilError(t, err)

	_, err = client.GET(context.Background(), "/Cubes")
	assert.NilError(t, err)
	assert.Check(t, is.Equal("existing-session", client.SessionID()))
}
