/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
	"github.com/cubewise-code/tm1go/internal/formatter/cube"
	"github.com/cubewise-code/tm1go/pkg/objects"
)

var listCubeCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List TM1 cubes",
	Long:    "List TM1 cubes",
	Example: `tm1 cube list`,
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		skipControl, err := cmd.Flags().GetBool("skip-control")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		var r []*objects.Cube
		if skipControl {
			r, err = tm1.Cubes.GetModelCubes(context.Background())
		} else {
			r, err = tm1.Cubes.GetAll(context.Background())
		}
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		cubeCtx := formatter.Context{
			Command: "list",
			Output:  os.Stdout,
			Format:  cube.NewCubeFormat(viper.GetString("output")),
		}
		if len(r) < 1 {
			if util.IsOutputType(formatter.TableFormatKey) {
				logrus.Info("No cubes found\n")
			} else {
				logrus.Info("[]\n")
			}
			return
		}
		cube.Write(cubeCtx, r)
	},
}

func init() {
	listCubeCmd.Flags().SortFlags = false

	listCubeCmd.Flags().Bool("skip-control", false,
		"[Optional] Skip control cubes whose name starts with '}'.")
}
