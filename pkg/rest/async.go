/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package rest

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

var asyncIDPattern = regexp.MustCompile(`'([^']+)'`)

// doAsync submits the request with the respond-async preference and polls
// the async operation until it completes or the configured timeout expires
func (c *Client) doAsync(ctx context.Context, method, fullURL, data string,
	headers map[string]string) (*Response, error) {

	asyncHeaders := map[string]string{"Prefer": "respond-async"}
	for key, value := range headers {
		asyncHeaders[key] = value
	}

	resp, err := c.doRaw(ctx, method, fullURL, data, asyncHeaders)
	if isUnauthorized(err) {
		if err := c.ReConnect(ctx); err != nil {
			return nil, err
		}
		resp, err = c.doRaw(ctx, method, fullURL, data, asyncHeaders)
	}
	if err != nil {
		return nil, err
	}

	location := resp.Header.Get("Location")
	if location == "" {
		// server answered synchronously
		return resp, nil
	}
	match := asyncIDPattern.FindStringSubmatch(location)
	if match == nil {
		return resp, nil
	}
	asyncID := match[1]
	logrus.Debugf("Polling async operation '%s'\n", asyncID)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = time.Second
	policy.MaxElapsedTime = c.cfg.Timeout

	var result *Response
	operation := func() error {
		poll, err := c.doRaw(ctx, http.MethodGet, c.baseURL+FormatURL("/_async('%s')", asyncID), "", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		if poll.Header.Get("asyncresult") == "" {
			return NewError("async operation still running")
		}
		result = poll
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		if _, stillRunning := err.(*Error); stillRunning || ctx.Err() != nil {
			if c.cfg.CancelAtTimeout {
				c.cancelAsyncOperation(asyncID)
			}
			return nil, &TimeoutError{Timeout: c.cfg.Timeout, Operation: method + " " + fullURL}
		}
		return nil, err
	}

	// the real outcome of the operation travels in the asyncresult header
	statusCode, convErr := strconv.Atoi(result.Header.Get("asyncresult"))
	if convErr != nil {
		statusCode = result.StatusCode
	}
	return verifyResponse(&Response{
		StatusCode: statusCode,
		Header:     result.Header,
		Body:       result.Body,
	})
}

// RetrieveAsyncResponse reads the current state of an asynchronous operation
// without waiting for it. While the operation is still running the response
// carries no asyncresult header.
func (c *Client) RetrieveAsyncResponse(ctx context.Context, asyncID string) (*Response, error) {
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}
	return c.doRaw(ctx, http.MethodGet, c.baseURL+FormatURL("/_async('%s')", asyncID), "", nil)
}

// cancelAsyncOperation deletes a running async operation on the server.
// Runs on a fresh context because the caller's context is already expired.
func (c *Client) cancelAsyncOperation(asyncID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := c.doRaw(ctx, http.MethodDelete,
		c.baseURL+FormatURL("/_async('%s')", asyncID), "", nil); err != nil {
		logrus.Debugf("Could not cancel async operation '%s': %v\n", asyncID, err)
	}
}
