/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package chore

import (
	"github.com/spf13/cobra"
)

// ChoreCmd set of commands are used to perform operations on chores
// in the TM1 database
var ChoreCmd = &cobra.Command{
	Use:   "chore",
	Short: "Manage TM1 chores",
	Long:  "Manage TM1 chores",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	ChoreCmd.AddCommand(listChoreCmd)
	ChoreCmd.AddCommand(describeChoreCmd)
	ChoreCmd.AddCommand(executeChoreCmd)
	ChoreCmd.AddCommand(activateChoreCmd)
	ChoreCmd.AddCommand(deactivateChoreCmd)
	ChoreCmd.AddCommand(deleteChoreCmd)
}
