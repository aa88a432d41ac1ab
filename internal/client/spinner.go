/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package client

import (
	"time"

	"github.com/briandowns/spinner"

	"github.com/cubewise-code/tm1go/internal/formatter"
)

// RunWithSpinner runs a long server-side operation behind a progress spinner
func RunWithSpinner(message string, fn func() error) error {
	s := spinner.New(spinner.CharSets[36], 300*time.Millisecond)
	s.Color(formatter.GreenColor)
	s.Suffix = " " + message
	s.FinalMSG = ""
	s.Start()
	defer s.Stop()

	return fn()
}
