/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package objects

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const sampleRules = `# budget rules
SKIPCHECK;
FEEDSTRINGS;

['actual'] = N: ['budget'] * 1.1;
FEEDERS;
['budget'] => ['actual'];
`

func TestRulesAnalytics(t *testing.T) {
	rules := NewRules(sampleRules)

	assert.Check(t, rules.Skipcheck())
	assert.Check(t, rules.FeedStrings())
	assert.Check(t, !rules.UndefVals())
	assert.Check(t, rules.HasFeeders())

	assert.Check(t, is.Len(rules.RuleStatements(), 3))
	assert.Check(t, is.Len(rules.FeederStatements(), 1))
	assert.Check(t, is.Equal("['BUDGET'] => ['ACTUAL']", rules.FeederStatements()[0]))
}

func TestRulesWithoutFeeders(t *testing.T) {
	rules := NewRules("SKIPCHECK;\n['a'] = 1;")
	assert.Check(t, !rules.HasFeeders())
	assert.Check(t, is.Len(rules.FeederStatements(), 0))
	assert.Check(t, is.Len(rules.RuleStatements(), 2))
}

func TestFeedersDeclarationAloneIsNotFeeders(t *testing.T) {
	rules := NewRules("['a'] = 1;\nFEEDERS;")
	assert.Check(t, !rules.HasFeeders())
}

func TestRulesBody(t *testing.T) {
	rules := NewRules("SKIPCHECK;")
	body, err := rules.Body()
	assert.NilError(t, err)
	assert.Check(t, is.Equal(`{"Rules":"SKIPCHECK;"}`, body))
}
