/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package main

import (
	"github.com/cubewise-code/tm1go/cmd"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
)

// version is overridden at build time via -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	tm1client.SetVersion(version)
	cmd.Execute(version)
}
