/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package sandbox

import (
	"github.com/spf13/cobra"
)

// SandboxCmd set of commands are used to perform operations on sandboxes
// in the TM1 database
var SandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Manage TM1 sandboxes",
	Long:  "Manage TM1 sandboxes",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	SandboxCmd.AddCommand(listSandboxCmd)
	SandboxCmd.AddCommand(createSandboxCmd)
	SandboxCmd.AddCommand(publishSandboxCmd)
	SandboxCmd.AddCommand(deleteSandboxCmd)
}
