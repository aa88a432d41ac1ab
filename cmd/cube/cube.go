/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"github.com/spf13/cobra"
)

// CubeCmd set of commands are used to perform operations on cubes
// in the TM1 database
var CubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Manage TM1 cubes",
	Long:  "Manage TM1 cubes",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	CubeCmd.AddCommand(listCubeCmd)
	CubeCmd.AddCommand(describeCubeCmd)
	CubeCmd.AddCommand(createCubeCmd)
	CubeCmd.AddCommand(deleteCubeCmd)
	CubeCmd.AddCommand(checkRulesCubeCmd)
	CubeCmd.AddCommand(dimensionsCubeCmd)
}
