/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// AuthMode describes how the session authenticates against the server.
// Modes from IBMCloudAPIKey onwards use the v12 authentication flow.
type AuthMode int

const (
	AuthModeBasic AuthMode = iota + 1
	AuthModeWIA
	AuthModeCAM
	AuthModeCAMSSO
	AuthModeIBMCloudAPIKey
	AuthModeServiceToService
	AuthModePAProxy
	AuthModeBasicAPIKey
	AuthModeAccessToken
)

// UseV12Auth reports whether the mode authenticates against a v12 endpoint
func (m AuthMode) UseV12Auth() bool {
	return m >= AuthModeIBMCloudAPIKey
}

func (m AuthMode) String() string {
	switch m {
	case AuthModeBasic:
		return "Basic"
	case AuthModeWIA:
		return "WIA"
	case AuthModeCAM:
		return "CAM"
	case AuthModeCAMSSO:
		return "CAMSSO"
	case AuthModeIBMCloudAPIKey:
		return "IBMCloudAPIKey"
	case AuthModeServiceToService:
		return "ServiceToService"
	case AuthModePAProxy:
		return "PAProxy"
	case AuthModeBasicAPIKey:
		return "BasicAPIKey"
	case AuthModeAccessToken:
		return "AccessToken"
	default:
		return fmt.Sprintf("AuthMode(%d)", int(m))
	}
}

const (
	defaultIAMURL         = "https://iam.cloud.ibm.com/identity/token"
	defaultSessionContext = "TM1go"
	defaultPoolSize       = 10
)

// Config holds every parameter accepted when establishing a session.
// Zero values are filled with sensible defaults by Normalize.
type Config struct {
	Address   string
	Port      int
	SSL       bool
	Instance  string
	Database  string
	BaseURL   string
	AuthURL   string
	User      string
	Password  string
	DecodeB64 bool
	Namespace string
	Gateway   string

	CAMPassport             string
	APIKey                  string
	IAMURL                  string
	PAURL                   string
	Tenant                  string
	AccessToken             string
	ApplicationClientID     string
	ApplicationClientSecret string

	// SessionID re-uses an existing server session instead of logging in
	SessionID      string
	SessionContext string
	Impersonate    string

	AuthMode           AuthMode
	Timeout            time.Duration
	CancelAtTimeout    bool
	AsyncRequestsMode  bool
	ConnectionPoolSize int

	// TLS verification. CAFile is optional, Insecure skips verification.
	Insecure bool
	CAFile   string
}

// Normalize fills defaults and resolves the authentication mode
func (c *Config) Normalize() {
	if c.SessionContext == "" {
		c.SessionContext = defaultSessionContext
	}
	if c.ConnectionPoolSize <= 0 {
		c.ConnectionPoolSize = defaultPoolSize
	}
	if c.IAMURL == "" {
		c.IAMURL = defaultIAMURL
	}
	if c.DecodeB64 && c.Password != "" {
		if decoded, err := base64.StdEncoding.DecodeString(c.Password); err == nil {
			c.Password = string(decoded)
		}
	}
	if c.AuthMode == 0 {
		c.AuthMode = c.determineAuthMode()
	}
}

func (c *Config) determineAuthMode() AuthMode {
	switch {
	case c.AccessToken != "":
		return AuthModeAccessToken
	case c.APIKey != "" && c.Tenant != "":
		return AuthModeIBMCloudAPIKey
	case c.APIKey != "":
		return AuthModeBasicAPIKey
	case c.Instance != "" && c.Database != "":
		return AuthModeServiceToService
	case c.Gateway != "":
		return AuthModeCAMSSO
	case c.Namespace != "":
		return AuthModeCAM
	case c.User == "" && c.Password == "" && c.CAMPassport == "":
		return AuthModeWIA
	default:
		return AuthModeBasic
	}
}

// ResolveBaseURL builds the service root and the authentication URL for the
// configured mode
func (c *Config) ResolveBaseURL() (baseURL string, authURL string, err error) {
	switch c.AuthMode {
	case AuthModeIBMCloudAPIKey:
		if c.Address == "" || c.Tenant == "" || c.Database == "" {
			return "", "", NewError("address, tenant and database are required for IBM Cloud sessions")
		}
		baseURL = fmt.Sprintf("https://%s/api/%s/v0/tm1/%s", c.Address, c.Tenant, c.Database)
		return baseURL, c.IAMURL, nil

	case AuthModeServiceToService, AuthModePAProxy, AuthModeBasicAPIKey, AuthModeAccessToken:
		root := strings.TrimSuffix(c.PAURL, "/")
		if root == "" {
			scheme := "http"
			if c.SSL {
				scheme = "https"
			}
			address := c.Address
			if address == "" {
				address = "localhost"
			}
			root = fmt.Sprintf("%s://%s:%d", scheme, address, c.Port)
		}
		if c.Instance == "" || c.Database == "" {
			return "", "", NewError("instance and database are required for v12 sessions")
		}
		baseURL = fmt.Sprintf("%s/%s/api/v1/Databases('%s')", root, c.Instance, c.Database)
		authRoot := strings.TrimSuffix(c.AuthURL, "/")
		if authRoot == "" {
			authURL = fmt.Sprintf("%s/%s/auth/v1/session", root, c.Instance)
		} else {
			authURL = authRoot
		}
		return baseURL, authURL, nil

	default:
		if c.BaseURL != "" {
			baseURL = strings.TrimSuffix(c.BaseURL, "/")
			if !strings.HasSuffix(baseURL, "/api/v1") {
				baseURL += "/api/v1"
			}
		} else {
			scheme := "http"
			if c.SSL {
				scheme = "https"
			}
			address := c.Address
			if address == "" {
				address = "localhost"
			}
			baseURL = fmt.Sprintf("%s://%s:%d/api/v1", scheme, address, c.Port)
		}
		return baseURL, baseURL + "/Configuration/ProductVersion/$value", nil
	}
}

// AuthorizationToken builds the initial Authorization header value
func (c *Config) AuthorizationToken() (string, error) {
	switch c.AuthMode {
	case AuthModeCAM:
		credentials := base64.StdEncoding.EncodeToString(
			[]byte(fmt.Sprintf("%s:%s:%s", c.User, c.Password, c.Namespace)))
		return "CAMNamespace " + credentials, nil
	case AuthModeAccessToken:
		return "Bearer " + c.AccessToken, nil
	case AuthModeBasicAPIKey:
		credentials := base64.StdEncoding.EncodeToString(
			[]byte(fmt.Sprintf("apikey:%s", c.APIKey)))
		return "Basic " + credentials, nil
	case AuthModeWIA:
		return "", NewError("integrated authentication is not supported on this platform")
	default:
		if c.CAMPassport != "" {
			return "CAMPassport " + c.CAMPassport, nil
		}
		credentials := base64.StdEncoding.EncodeToString(
			[]byte(fmt.Sprintf("%s:%s", c.User, c.Password)))
		return "Basic " + credentials, nil
	}
}
