/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package process

import (
	"github.com/spf13/cobra"
)

// ProcessCmd set of commands are used to perform operations on TurboIntegrator
// processes in the TM1 database
var ProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Manage TM1 TurboIntegrator processes",
	Long:  "Manage TM1 TurboIntegrator processes",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	ProcessCmd.AddCommand(listProcessCmd)
	ProcessCmd.AddCommand(describeProcessCmd)
	ProcessCmd.AddCommand(createProcessCmd)
	ProcessCmd.AddCommand(executeProcessCmd)
	ProcessCmd.AddCommand(compileProcessCmd)
	ProcessCmd.AddCommand(deleteProcessCmd)
}
