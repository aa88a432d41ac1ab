/*
 * Copyright (c) Cubewise CODE GmbH.
 */

// Package services exposes one service per server-side resource type, all
// sharing a single rest.Client session.
package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cubewise-code/tm1go/pkg/rest"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ObjectService carries the behavior every resource service shares
type ObjectService struct {
	rest *rest.Client
}

// NewObjectService wraps the session
func NewObjectService(client *rest.Client) ObjectService {
	return ObjectService{rest: client}
}

// Client exposes the underlying session
func (s ObjectService) Client() *rest.Client {
	return s.rest
}

// Exists probes a resource URL, treating 404 as a clean false
func (s ObjectService) Exists(ctx context.Context, url string) (bool, error) {
	_, err := s.rest.GET(ctx, url)
	if err == nil {
		return true, nil
	}
	if rest.IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// SuggestUniqueObjectName produces a name that is practically guaranteed not
// to collide with an existing object
func (s ObjectService) SuggestUniqueObjectName() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return "tm1go." + suffix
}

// DetermineActualObjectName resolves the server-side spelling of a name the
// caller provided in arbitrary case and spacing
func (s ObjectService) DetermineActualObjectName(ctx context.Context, objectClass, objectName string) (string, error) {
	url := rest.FormatURL(
		"/%s?$filter=replace(tolower(Name), ' ', '') eq '%s'",
		objectClass, strings.ToLower(strings.ReplaceAll(objectName, " ", "")))
	resp, err := s.rest.GET(ctx, url)
	if err != nil {
		return "", err
	}
	var payload struct {
		Value []struct {
			Name string `json:"Name"`
		} `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return "", errors.Wrap(err, "decoding object lookup")
	}
	if len(payload.Value) == 0 {
		return "", rest.NewError("object '" + objectName + "' of class '" + objectClass + "' not found")
	}
	return payload.Value[0].Name, nil
}

// valueListNames decodes the common {"value":[{"Name": ...}]} listing shape
func valueListNames(resp *rest.Response) ([]string, error) {
	var payload struct {
		Value []struct {
			Name string `json:"Name"`
		} `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding name listing")
	}
	names := make([]string, 0, len(payload.Value))
	for _, entry := range payload.Value {
		names = append(names, entry.Name)
	}
	return names, nil
}

// rawValueList decodes the common {"value":[...]} listing shape keeping the
// entries as raw JSON
func rawValueList(resp *rest.Response) ([]json.RawMessage, error) {
	var payload struct {
		Value []json.RawMessage `json:"value"`
	}
	if err := resp.JSON(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding listing")
	}
	return payload.Value, nil
}
