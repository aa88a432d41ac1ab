/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cell

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var getCellCmd = &cobra.Command{
	Use:     "get",
	Short:   "Read a single TM1 cube cell",
	Long:    "Read the value of one cell addressed by one element per dimension in cube order",
	Example: `tm1 cell get --cube Sales --elements "Germany,2024,Revenue"`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		cubeName, err := cmd.Flags().GetString("cube")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		elements, err := cmd.Flags().GetString("elements")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		sandboxName, err := cmd.Flags().GetString("sandbox")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		value, err := tm1.Cells.GetValue(context.Background(), cubeName,
			util.SplitNames(elements), nil, sandboxName)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		fmt.Printf("%v\n", value)
	},
}

func init() {
	getCellCmd.Flags().SortFlags = false
	getCellCmd.Flags().StringP("cube", "c", "",
		"[Required] The name of the cube holding the cell.")
	getCellCmd.MarkFlagRequired("cube")
	getCellCmd.Flags().StringP("elements", "e", "",
		"[Required] Comma separated element names, one per dimension in cube order.")
	getCellCmd.MarkFlagRequired("elements")
	getCellCmd.Flags().String("sandbox", "",
		"[Optional] Read the cell from the named sandbox instead of base.")
}
