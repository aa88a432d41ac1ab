/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cell

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var setCellCmd = &cobra.Command{
	Use:   "set",
	Short: "Write a single TM1 cube cell",
	Long: "Write one cell addressed by one element per dimension in cube order. " +
		"Numeric input is written as a number, everything else as a string.",
	Example: `tm1 cell set --cube Sales --elements "Germany,2024,Revenue" --value 1250`,
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
		rawValue, err := cmd.Flags().GetString("value")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		sandboxName, err := cmd.Flags().GetString("sandbox")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		var value interface{} = rawValue
		if number, convErr := strconv.ParseFloat(rawValue, 64); convErr == nil {
			value = number
		}

		err = tm1.Cells.WriteValue(context.Background(), value, cubeName,
			util.SplitNames(elements), nil, sandboxName)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		logrus.Infof("The cell has been written\n")
	},
}

func init() {
	setCellCmd.Flags().SortFlags = false
	setCellCmd.Flags().StringP("cube", "c", "",
		"[Required] The name of the cube holding the cell.")
	setCellCmd.MarkFlagRequired("cube")
	setCellCmd.Flags().StringP("elements", "e", "",
		"[Required] Comma separated element names, one per dimension in cube order.")
	setCellCmd.MarkFlagRequired("elements")
	setCellCmd.Flags().StringP("value", "v", "",
		"[Required] The value to write.")
	setCellCmd.MarkFlagRequired("value")
	setCellCmd.Flags().String("sandbox", "",
		"[Optional] Write the cell into the named sandbox instead of base.")
}
