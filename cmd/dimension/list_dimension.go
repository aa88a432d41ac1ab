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

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/dimension"
)

var listDimensionCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 dimensions",
	Long:    "List TM1 dimensions",
	Example: `tm1 dimension list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		skipControl, err := cmd.Flags().GetBool("skip-control")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Dimensions.GetAll(context.Background(), skipControl)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		dimensionCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  dimension.NewDimensionFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No dimensions found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		dimension.Write(dimensionCtx, r)
	},
}

func init() {
	listDimensionCmd.Flags().SortFlags = false

	listDimensionCmd.Flags().Bool("skip-control", false,
		"[Optional] Skip control dimensions whose name starts with '}'.")
}
