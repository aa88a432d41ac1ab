/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package dimension

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/dimension"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var describeDimensionCmd = &cobra.Command{
	Use:     "describe",
	Aliases: []string{"get"},
	Short:   "Describe a TM1 dimension",
	Long:    "Describe a dimension in the TM1 database, including its hierarchies",
	Example: `tm1 dimension describe --name <dimension-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No dimension name found to describe\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Dimensions.Get(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		dimensionCtx := formatter.Context{
			Command: "describe",
			Output:  os.Stdout,
			Format:  dimension.NewDimensionFormat(viper.GetString("output")),
		}
		dimension.Write(dimensionCtx, []*objects.Dimension{r})
	},
}

func init() {
	describeDimensionCmd.Flags().SortFlags = false
	describeDimensionCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the dimension to be described.")
	describeDimensionCmd.MarkFlagRequired("name")
}
