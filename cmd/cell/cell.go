/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cell

import (
	"github.com/spf13/cobra"
)

// CellCmd set of commands are used to read and write cube cells
// in the TM1 database
var CellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Read and write TM1 cube cells",
	Long:  "Read and write TM1 cube cells",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	CellCmd.AddCommand(getCellCmd)
	CellCmd.AddCommand(setCellCmd)
	CellCmd.AddCommand(queryCellCmd)
}
