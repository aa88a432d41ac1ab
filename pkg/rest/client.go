/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const sessionCookieName = "TM1SessionId"

// Response is the outcome of a successful exchange with the server
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON unmarshals the response body into v
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Text returns the response body as string
func (r *Response) Text() string {
	return string(r.Body)
}

// Client is the low-level session against the TM1 REST API. It owns
// authentication, the session cookie, default headers and the optional
// asynchronous request mode. All resource services share one Client.
type Client struct {
	cfg        Config
	httpClient *http.Client
	baseURL    string
	authURL    string

	mu            sync.Mutex
	authorization string
	connected     bool
	version       string
	sessionID     string

	adminMu            sync.Mutex
	adminLoaded        bool
	isAdmin            bool
	isDataAdmin        bool
	isSecurityAdmin    bool
	isOpsAdmin         bool
	sandboxingOnce     sync.Once
	sandboxingDisabled bool
}

// New creates a client for the given configuration. No request is issued
// until Connect or the first verb call.
func New(cfg Config) (*Client, error) {
	cfg.Normalize()

	baseURL, authURL, err := cfg.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: cfg.Insecure}
	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading CA certificate")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, NewError("no certificates found in " + cfg.CAFile)
		}
		tlsConfig.RootCAs = pool
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating cookie jar")
	}

	transport := &http.Transport{
		TLSClientConfig:     tlsConfig,
		MaxIdleConnsPerHost: cfg.ConnectionPoolSize,
	}

	client := &Client{
		cfg:     cfg,
		baseURL: baseURL,
		authURL: authURL,
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   cfg.Timeout,
		},
	}

	if cfg.SessionID != "" {
		if err := client.adoptSession(cfg.SessionID); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// BaseURL returns the resolved service root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SessionID returns the TM1SessionId cookie value of the active session
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Version returns the product version reported by the server at login
func (c *Client) Version() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// adoptSession seeds the cookie jar with an existing session id
func (c *Client) adoptSession(sessionID string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.Wrap(err, "parsing base URL")
	}
	c.httpClient.Jar.SetCookies(u, []*http.Cookie{{Name: sessionCookieName, Value: sessionID}})
	c.mu.Lock()
	c.sessionID = sessionID
	c.connected = true
	c.mu.Unlock()
	return nil
}

func (c *Client) defaultHeaders() map[string]string {
	headers := map[string]string{
		"Content-Type":       "application/json; odata.streaming=true; charset=utf-8",
		"Accept":             "application/json;odata.metadata=none,text/plain",
		"TM1-SessionContext": c.cfg.SessionContext,
		"User-Agent":         "TM1go",
	}
	if c.cfg.Impersonate != "" {
		headers["TM1-Impersonate"] = c.cfg.Impersonate
	}
	return headers
}

// Connect authenticates and stores the server version and session cookie
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.authenticate(ctx)
}

func (c *Client) authenticate(ctx context.Context) error {
	if c.cfg.AuthMode.UseV12Auth() {
		return c.authenticateV12(ctx)
	}

	token, err := c.cfg.AuthorizationToken()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.authorization = token
	c.mu.Unlock()

	resp, err := c.doRaw(ctx, http.MethodGet, c.authURL, "", nil)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}

	c.mu.Lock()
	c.version = strings.TrimSpace(string(resp.Body))
	c.sessionID = c.extractSessionID()
	// the cookie carries the session from here on
	c.authorization = ""
	c.connected = true
	c.mu.Unlock()

	logrus.Debugf("Connected to %s, server version %s\n", c.baseURL, c.version)
	return nil
}

// authenticateV12 exchanges credentials for a bearer token at the v12 or
// IBM Cloud authentication endpoint
func (c *Client) authenticateV12(ctx context.Context) error {
	var token string
	switch c.cfg.AuthMode {
	case AuthModeIBMCloudAPIKey:
		form := url.Values{}
		form.Set("grant_type", "urn:ibm:params:oauth:grant-type:apikey")
		form.Set("apikey", c.cfg.APIKey)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL,
			strings.NewReader(form.Encode()))
		if err != nil {
			return errors.Wrap(err, "building IAM request")
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "requesting IAM token")
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "reading IAM response")
		}
		if resp.StatusCode != http.StatusOK {
			return &RestError{StatusCode: resp.StatusCode, Reason: resp.Status,
				Response: string(body), Headers: resp.Header}
		}
		var payload struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return errors.Wrap(err, "decoding IAM response")
		}
		token = payload.AccessToken

	case AuthModeAccessToken:
		token = c.cfg.AccessToken

	default:
		credentials := map[string]string{}
		if c.cfg.ApplicationClientID != "" {
			credentials["ClientID"] = c.cfg.ApplicationClientID
			credentials["ClientSecret"] = c.cfg.ApplicationClientSecret
		} else {
			credentials["User"] = c.cfg.User
			credentials["Password"] = c.cfg.Password
		}
		body, _ := json.Marshal(credentials)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL,
			strings.NewReader(string(body)))
		if err != nil {
			return errors.Wrap(err, "building session request")
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "requesting session token")
		}
		defer resp.Body.Close()
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "reading session response")
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &RestError{StatusCode: resp.StatusCode, Reason: resp.Status,
				Response: string(respBody), Headers: resp.Header}
		}
		var payload struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(respBody, &payload); err != nil {
			return errors.Wrap(err, "decoding session response")
		}
		token = payload.AccessToken
	}

	c.mu.Lock()
	c.authorization = "Bearer " + token
	c.connected = true
	c.mu.Unlock()

	resp, err := c.doRaw(ctx, http.MethodGet, c.baseURL+"/Configuration/ProductVersion/$value", "", nil)
	if err != nil {
		return errors.Wrap(err, "reading product version")
	}
	c.mu.Lock()
	c.version = strings.TrimSpace(string(resp.Body))
	c.sessionID = c.extractSessionID()
	c.mu.Unlock()
	return nil
}

// extractSessionID pulls the TM1SessionId cookie from the jar. Callers hold c.mu.
func (c *Client) extractSessionID() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// ReConnect drops the current session state and authenticates again
func (c *Client) ReConnect(ctx context.Context) error {
	c.mu.Lock()
	c.connected = false
	c.sessionID = ""
	c.mu.Unlock()
	return c.authenticate(ctx)
}

// Logout closes the active session on the server
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/ActiveSession/tm1.Close", "",
		map[string]string{"Connection": "close"})
	c.mu.Lock()
	c.connected = false
	c.sessionID = ""
	c.mu.Unlock()
	return err
}

// GET issues a GET request against the service root
func (c *Client) GET(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, "", nil)
}

// POST issues a POST request against the service root
func (c *Client) POST(ctx context.Context, url, data string) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, data, nil)
}

// PATCH issues a PATCH request against the service root
func (c *Client) PATCH(ctx context.Context, url, data string) (*Response, error) {
	return c.do(ctx, http.MethodPatch, url, data, nil)
}

// PUT issues a PUT request against the service root
func (c *Client) PUT(ctx context.Context, url, data string) (*Response, error) {
	return c.do(ctx, http.MethodPut, url, data, nil)
}

// DELETE issues a DELETE request against the service root
func (c *Client) DELETE(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, url, "", nil)
}

func (c *Client) do(ctx context.Context, method, relativeURL, data string,
	headers map[string]string) (*Response, error) {

	if err := c.Connect(ctx); err != nil {
		return nil, err
	}

	fullURL := relativeURL
	if !strings.HasPrefix(relativeURL, "http") {
		fullURL = c.baseURL + relativeURL
	}
	// OData filters carry literal spaces
	fullURL = strings.ReplaceAll(fullURL, " ", "%20")

	if c.cfg.AsyncRequestsMode {
		return c.doAsync(ctx, method, fullURL, data, headers)
	}

	resp, err := c.doRaw(ctx, method, fullURL, data, headers)
	if isUnauthorized(err) {
		logrus.Debugf("Session expired, re-authenticating\n")
		if err := c.ReConnect(ctx); err != nil {
			return nil, err
		}
		return c.doRaw(ctx, method, fullURL, data, headers)
	}
	return resp, err
}

// doRaw performs a single exchange and verifies the response status
func (c *Client) doRaw(ctx context.Context, method, fullURL, data string,
	headers map[string]string) (*Response, error) {

	req, err := http.NewRequestWithContext(ctx, method, fullURL, strings.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	for key, value := range c.defaultHeaders() {
		req.Header.Set(key, value)
	}
	c.mu.Lock()
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	c.mu.Unlock()
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	logrus.Debugf("%s %s\n", method, fullURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil || os.IsTimeout(err) {
			return nil, &TimeoutError{Timeout: c.cfg.Timeout, Operation: method + " " + fullURL}
		}
		return nil, errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	response := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	return verifyResponse(response)
}

func verifyResponse(resp *Response) (*Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	return nil, &RestError{
		StatusCode: resp.StatusCode,
		Reason:     http.StatusText(resp.StatusCode),
		Response:   string(resp.Body),
		Headers:    resp.Header,
	}
}

func isUnauthorized(err error) bool {
	var restErr *RestError
	if errors.As(err, &restErr) {
		return restErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// SandboxingDisabled reports whether sandboxes are disabled on the server.
// The value is read once and cached for the session.
func (c *Client) SandboxingDisabled(ctx context.Context) bool {
	c.sandboxingOnce.Do(func() {
		resp, err := c.GET(ctx, "/ActiveConfiguration/Administration/DisableSandboxing/$value")
		if err != nil {
			logrus.Debugf("Could not read sandboxing setting: %v\n", err)
			return
		}
		c.sandboxingDisabled = strings.EqualFold(strings.TrimSpace(resp.Text()), "true")
	})
	return c.sandboxingDisabled
}

// loadAdminFlags reads the active user's groups once. A failed read is not
// cached, the next caller retries.
func (c *Client) loadAdminFlags(ctx context.Context) {
	c.adminMu.Lock()
	defer c.adminMu.Unlock()
	if c.adminLoaded {
		return
	}
	resp, err := c.GET(ctx, "/ActiveUser/Groups")
	if err != nil {
		logrus.Debugf("Could not read active user groups: %v\n", err)
		return
	}
	var payload struct {
		Value []struct {
			Name string `json:"Name"`
		} `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return
	}
	for _, group := range payload.Value {
		switch strings.ToUpper(strings.ReplaceAll(group.Name, " ", "")) {
		case "ADMIN":
			c.isAdmin = true
			c.isDataAdmin = true
			c.isSecurityAdmin = true
			c.isOpsAdmin = true
		case "DATAADMIN":
			c.isDataAdmin = true
		case "SECURITYADMIN":
			c.isSecurityAdmin = true
		case "OPERATIONSADMIN":
			c.isOpsAdmin = true
		}
	}
	c.adminLoaded = true
}

// IsAdmin reports whether the active user is a member of the ADMIN group
func (c *Client) IsAdmin(ctx context.Context) bool {
	c.loadAdminFlags(ctx)
	return c.isAdmin
}

// IsDataAdmin reports whether the active user holds DataAdmin rights
func (c *Client) IsDataAdmin(ctx context.Context) bool {
	c.loadAdminFlags(ctx)
	return c.isDataAdmin
}

// IsSecurityAdmin reports whether the active user holds SecurityAdmin rights
func (c *Client) IsSecurityAdmin(ctx context.Context) bool {
	c.loadAdminFlags(ctx)
	return c.isSecurityAdmin
}

// IsOpsAdmin reports whether the active user holds OperationsAdmin rights
func (c *Client) IsOpsAdmin(ctx context.Context) bool {
	c.loadAdminFlags(ctx)
	return c.isOpsAdmin
}

// RequireVersion returns a VersionError when the connected server is older
// than requiredVersion
func (c *Client) RequireVersion(function, requiredVersion string) error {
	c.mu.Lock()
	version := c.version
	c.mu.Unlock()
	if version == "" || VerifyVersion(requiredVersion, version) {
		return nil
	}
	return &VersionError{Function: function, RequiredVersion: requiredVersion}
}

// RequireAdmin returns a NotAdminError when the active user is not an admin
func (c *Client) RequireAdmin(ctx context.Context, function string) error {
	if c.IsAdmin(ctx) {
		return nil
	}
	return &NotAdminError{Function: function}
}

// RequireDataAdmin returns a NotDataAdminError when the active user lacks
// DataAdmin rights
func (c *Client) RequireDataAdmin(ctx context.Context, function string) error {
	if c.IsDataAdmin(ctx) {
		return nil
	}
	return &NotDataAdminError{Function: function}
}

// RequireSecurityAdmin returns a NotSecurityAdminError when the active user
// lacks SecurityAdmin rights
func (c *Client) RequireSecurityAdmin(ctx context.Context, function string) error {
	if c.IsSecurityAdmin(ctx) {
		return nil
	}
	return &NotSecurityAdminError{Function: function}
}

// RequireOpsAdmin returns a NotOpsAdminError when the active user lacks
// OperationsAdmin rights
func (c *Client) RequireOpsAdmin(ctx context.Context, function string) error {
	if c.IsOpsAdmin(ctx) {
		return nil
	}
	return &NotOpsAdminError{Function: function}
}
