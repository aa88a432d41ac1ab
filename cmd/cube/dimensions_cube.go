/*
 * Copyright (c) Cubewise CODE GmbH.
 */

package cube

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubewise-code/tm1go/cmd/util"
	tm1client "github.com/cubewise-code/tm1go/internal/client"
	"github.com/cubewise-code/tm1go/internal/formatter"
)

var dimensionsCubeCmd = &cobra.Command{
	Use:     "dimensions",
	Short:   "List the dimensions of a TM1 cube",
	Long:    "List the dimensions of a cube in the order they appear in the cube definition",
	Example: `tm1 cube dimensions --name <cube-name>`,
	PreRun: func(cmd *cobra.Command, args []string) {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		if len(name) == 0 {
			cmd.Help()
			logrus.Fatalln(
				formatter.Colorize("No cube name found\n", formatter.RedColor))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		tm1 := tm1client.NewTM1Client()
		defer tm1.Logout(context.Background())

		name, err := cmd.Flags().GetString("name")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		r, err := tm1.Cubes.GetDimensionNames(context.Background(), name)
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}

		if util.IsOutputType(formatter.TableFormatKey) {
			for _, dimension := range r {
				fmt.Println(dimension)
			}
			return
		}
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
		fmt.Println(string(out))
	},
}

func init() {
	dimensionsCubeCmd.Flags().SortFlags = false
	dimensionsCubeCmd.Flags().StringP("name", "n", "",
		"[Required] The name of the cube.")
	dimensionsCubeCmd.MarkFlagRequired("name")
}
