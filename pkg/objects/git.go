/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import "encoding/json"

// GitCommit identifies one commit on the model repository
type GitCommit struct {
	ID      string `json:"ID"`
	Summary string `json:"Summary"`
	Author  string `json:"Author"`
}

// GitRemote is the state of the configured remote
type GitRemote struct {
	Connected bool     `json:"Connected"`
	Branches  []string `json:"Branches"`
	Tags      []string `json:"Tags"`
}

// Git is the repository status of the server
type Git struct {
	URL            string            `json:"URL"`
	Deployment     string            `json:"Deployment"`
	Force          bool              `json:"Force"`
	DeployedCommit GitCommit         `json:"DeployedCommit"`
	Remote         GitRemote         `json:"Remote"`
	Config         map[string]string `json:"Config"`
}

// GitFromJSON parses the server representation of the git status
func GitFromJSON(data []byte) (*Git, error) {
	var git Git
	if err := json.Unmarshal(data, &git); err != nil {
		return nil, err
	}
	return &git, nil
}

// GitPlan is a pending push or pull operation. The concrete kind is carried
// in the @odata.type discriminator.
type GitPlan struct {
	ID     string `json:"ID"`
	Branch string `json:"Branch"`
	Force  bool   `json:"Force"`

	// push plans
	NewBranch    string    `json:"NewBranch"`
	NewCommit    GitCommit `json:"NewCommit"`
	ParentCommit GitCommit `json:"ParentCommit"`
	SourceFiles  []string  `json:"SourceFiles"`

	// pull plans
	Commit     GitCommit `json:"Commit"`
	Operations []string  `json:"Operations"`

	ODataType string `json:"@odata.type"`
}

// IsPushPlan reports whether the plan originates from a GitPush
func (p *GitPlan) IsPushPlan() bool {
	return p.ODataType == "#ibm.tm1.api.v1.GitPushPlan"
}

// IsPullPlan reports whether the plan originates from a GitPull
func (p *GitPlan) IsPullPlan() bool {
	return p.ODataType == "#ibm.tm1.api.v1.GitPullPlan"
}

// GitPlanFromJSON parses a plan returned by GitPush or GitPull
func GitPlanFromJSON(data []byte) (*GitPlan, error) {
	var plan GitPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
