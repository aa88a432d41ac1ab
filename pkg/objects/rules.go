/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"encoding/json"
	"strings"
)

// Rules wraps the rules text of a cube together with a normalized statement
// list used for analysis: comments stripped, statements upper-cased with
// linebreaks removed.
type Rules struct {
	Text       string
	statements []string
}

// NewRules parses the rules text into its analysis form
func NewRules(text string) *Rules {
	r := &Rules{Text: text}
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, line)
	}
	for _, statement := range strings.Split(strings.Join(kept, "\n"), ";") {
		if len(strings.TrimSpace(statement)) == 0 {
			continue
		}
		normalized := strings.ToUpper(strings.ReplaceAll(statement, "\n", ""))
		r.statements = append(r.statements, normalized)
	}
	return r
}

// Statements returns all normalized statements, keywords included
func (r *Rules) Statements() []string {
	return r.statements
}

// RuleStatements returns the statements before the FEEDERS declaration
func (r *Rules) RuleStatements() []string {
	if r.HasFeeders() {
		return r.statements[:r.feedersIndex()]
	}
	return r.statements
}

// FeederStatements returns the statements after the FEEDERS declaration
func (r *Rules) FeederStatements() []string {
	if r.HasFeeders() {
		return r.statements[r.feedersIndex()+1:]
	}
	return nil
}

func (r *Rules) feedersIndex() int {
	for i, statement := range r.statements {
		if statement == "FEEDERS" {
			return i
		}
	}
	return -1
}

// declarations may only appear among the first statements
func (r *Rules) hasLeadingKeyword(keyword string) bool {
	limit := 5
	if len(r.statements) < limit {
		limit = len(r.statements)
	}
	for _, statement := range r.statements[:limit] {
		if statement == keyword {
			return true
		}
	}
	return false
}

// Skipcheck reports whether the rules declare SKIPCHECK
func (r *Rules) Skipcheck() bool {
	return r.hasLeadingKeyword("SKIPCHECK")
}

// UndefVals reports whether the rules declare UNDEFVALS
func (r *Rules) UndefVals() bool {
	return r.hasLeadingKeyword("UNDEFVALS")
}

// FeedStrings reports whether the rules declare FEEDSTRINGS
func (r *Rules) FeedStrings() bool {
	return r.hasLeadingKeyword("FEEDSTRINGS")
}

// HasFeeders reports whether a FEEDERS declaration is followed by at least
// one feeder statement
func (r *Rules) HasFeeders() bool {
	index := r.feedersIndex()
	return index >= 0 && index < len(r.statements)-1
}

// Len returns the number of statements
func (r *Rules) Len() int {
	return len(r.statements)
}

// Body builds the update body for the rules of a cube
func (r *Rules) Body() (string, error) {
	data, err := json.Marshal(map[string]string{"Rules": r.Text})
	return string(data), err
}

func (r *Rules) String() string {
	return r.Text
}
