/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import "encoding/json"

// Sandbox mirrors a private workspace for cell changes
type Sandbox struct {
	Name                      string `json:"Name"`
	IncludeInSandboxDimension bool   `json:"IncludeInSandboxDimension"`
	IsActive                  bool   `json:"IsActive,omitempty"`
	IsQueued                  bool   `json:"IsQueued,omitempty"`
	IsLoaded                  bool   `json:"IsLoaded,omitempty"`
}

// NewSandbox creates a sandbox that shows up in the sandbox dimension
func NewSandbox(name string) *Sandbox {
	return &Sandbox{Name: name, IncludeInSandboxDimension: true}
}

// Body builds the creation body of the sandbox
func (s *Sandbox) Body() (string, error) {
	data, err := json.Marshal(map[string]interface{}{
		"Name":                      s.Name,
		"IncludeInSandboxDimension": s.IncludeInSandboxDimension,
	})
	return string(data), err
}

// SandboxFromJSON parses the server representation
func SandboxFromJSON(data []byte) (*Sandbox, error) {
	var sandbox Sandbox
	if err := json.Unmarshal(data, &sandbox); err != nil {
		return nil, err
	}
	return &sandbox, nil
}
