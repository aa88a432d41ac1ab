/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package server

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
)

var versionServerCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show the TM1 server version",
	Long:    "Show the product version of the connected TM1 server",
	Example: `tm1 server version`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		fmt.Println(tm1.Version())
	},
}

func init() {
	versionServerCmd.Flags().SortFlags = false
}
