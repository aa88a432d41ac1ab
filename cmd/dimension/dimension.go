/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package dimension

import (
	"github.com/spf13/cobra"
)

// DimensionCmd set of commands are used to perform operations on dimensions
// in the TM1 database
var DimensionCmd = &cobra.Command{
	Use:   "dimension",
	Short: "Manage TM1 dimensions",
	Long:  "Manage TM1 dimensions",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	DimensionCmd.AddCommand(listDimensionCmd)
	DimensionCmd.AddCommand(describeDimensionCmd)
	DimensionCmd.AddCommand(createDimensionCmd)
	DimensionCmd.AddCommand(deleteDimensionCmd)
}
