/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package server

import (
	"github.com/spf13/cobra"
)

// ServerCmd set of commands are used to perform server level operations
// on the TM1 database
var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage the TM1 server",
	Long:  "Manage the TM1 server",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	ServerCmd.AddCommand(versionServerCmd)
	ServerCmd.AddCommand(saveDataServerCmd)
	ServerCmd.AddCommand(whoamiServerCmd)
}
