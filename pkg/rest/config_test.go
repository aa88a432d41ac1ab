/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestDetermineAuthMode(t *testing.T) {
	testCases := []struct {
		name     string
		config   Config
		expected AuthMode
	}{
		{"basic", Config{User: "admin", Password: "apple"}, AuthModeBasic},
		{"cam", Config{User: "admin", Password: "apple", Namespace: "LDAP"}, AuthModeCAM},
		{"cam sso", Config{Gateway: "https://gw.example.com"}, AuthModeCAMSSO},
		{"wia", Config{}, AuthModeWIA},
		{"ibm cloud", Config{APIKey: "key", Tenant: "ZYX1"}, AuthModeIBMCloudAPIKey},
		{"basic api key", Config{APIKey: "key"}, AuthModeBasicAPIKey},
		{"service to service", Config{Instance: "planning", Database: "Budget"}, AuthModeServiceToService},
		{"access token", Config{AccessToken: "token"}, AuthModeAccessToken},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.config.Normalize()
			assert.Check(t, is.Equal(tc.expected, tc.config.AuthMode))
		})
	}
}

func TestUseV12Auth(t *testing.T) {
	assert.Check(t, !AuthModeBasic.UseV12Auth())
	assert.Check(t, !AuthModeCAMSSO.UseV12Auth())
	assert.Check(t, AuthModeIBMCloudAPIKey.UseV12Auth())
	assert.Check(t, AuthModeAccessToken.UseV12Auth())
}

func TestResolveBaseURLV11(t *testing.T) {
	config := Config{Address: "tm1.example.com", Port: 12354, SSL: true,
		User: "admin", Password: "apple"}
	config.Normalize()

	baseURL, authURL, err := config.ResolveBaseURL()
	assert.NilError(t, err)
	assert.Check(t, is.Equal("https://tm1.example.com:12354/api/v1", baseURL))
	assert.Check(t, is.Equal(
		"https://tm1.example.com:12354/api/v1/Configuration/ProductVersion/$value", authURL))
}

func TestResolveBaseURLDefaultsToLocalhost(t *testing.T) {
	config := Config{Port: 8001, User: "admin", Password: "apple"}
	config.Normalize()

	baseURL, _, err := config.ResolveBaseURL()
	assert.NilError(t, err)
	assert.Check(t, is.Equal("http://localhost:8001/api/v1", baseURL))
}

func TestResolveBaseURLIBMCloud(t *testing.T) {
	config := Config{Address: "us-east-1.planninganalytics.cloud.ibm.com",
		Tenant: "ZYX1", Database: "Budget", APIKey: "key"}
	config.Normalize()

	baseURL, authURL, err := config.ResolveBaseURL()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(
		"https://us-east-1.planninganalytics.cloud.ibm.com/api/ZYX1/v0/tm1/Budget", baseURL))
	assert.Check(t, is.Equal("https://iam.cloud.ibm.com/identity/token", authURL))
}

func TestResolveBaseURLServiceToService(t *testing.T) {
	config := Config{PAURL: "https://pa.example.com", Instance: "planning",
		Database: "Budget", User: "admin", Password: "apple",
		AuthMode: AuthModeServiceToService}
	config.Normalize()

	baseURL, authURL, err := config.ResolveBaseURL()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(
		"https://pa.example.com/planning/api/v1/Databases('Budget')", baseURL))
	assert.Check(t, is.Equal("https://pa.example.com/planning/auth/v1/session", authURL))
}

func TestAuthorizationToken(t *testing.T) {
	basic := Config{User: "admin", Password: "apple"}
	basic.Normalize()
	token, err := basic.AuthorizationToken()
	assert.NilError(t, err)
	assert.Check(t, is.Equal("Basic YWRtaW46YXBwbGU=", token))

	cam := Config{User: "admin", Password: "apple", Namespace: "LDAP"}
	cam.Normalize()
	token, err = cam.AuthorizationToken()
	assert.NilError(t, err)
	assert.Check(t, is.Equal("CAMNamespace YWRtaW46YXBwbGU6TERBUA==", token))
}

func TestNormalizeDecodesBase64Password(t *testing.T) {
	config := Config{User: "admin", Password: "YXBwbGU=", DecodeB64: true}
	config.Normalize()
	assert.Check(t, is.Equal("apple", config.Password))
}
