/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package session

import (
	"github.com/spf13/cobra"
)

// SessionCmd set of commands are used to inspect and close sessions
// on the TM1 server
var SessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage TM1 server sessions",
	Long:  "Manage TM1 server sessions",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	SessionCmd.AddCommand(listSessionCmd)
	SessionCmd.AddCommand(closeSessionCmd)
}
