/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package formatter

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestSubHeaderContextLabel(t *testing.T) {
	header := SubHeaderContext{}

	assert.Check(t, is.Equal("Name", header.Label(".Name")))
	assert.Check(t, is.Equal("Has Rules", header.Label(".Has_Rules")))
	assert.Check(t, is.Equal("Start Time", header.Label("Chore.Start-Time")))
}

func TestHeaderContextFullHeader(t *testing.T) {
	context := &HeaderContext{Header: SubHeaderContext{"Name": "Name"}}
	full, ok := context.FullHeader().(SubHeaderContext)
	assert.Assert(t, ok)
	assert.Check(t, is.Equal("Name", full["Name"]))
}
