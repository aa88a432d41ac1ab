/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package user

import (
	"github.com/spf13/cobra"
)

// UserCmd set of commands are used to perform operations on users
// in the TM1 database
var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage TM1 users",
	Long:  "Manage TM1 users",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	UserCmd.AddCommand(listUserCmd)
	UserCmd.AddCommand(describeUserCmd)
	UserCmd.AddCommand(createUserCmd)
	UserCmd.AddCommand(deleteUserCmd)
}
